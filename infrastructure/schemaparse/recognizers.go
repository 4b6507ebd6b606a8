// Package schemaparse extracts table, column, and foreign-key declarations
// from Drizzle-style schema-definition files using line-oriented,
// depth-tracked scanning. Every declaration idiom is isolated behind a named
// recognizer so a future syntax-tree upgrade only touches this layer.
package schemaparse

import (
	"regexp"
	"strings"
)

var (
	// export const validationRuns = pgTable('validation_runs', {
	tableHeaderPattern = regexp.MustCompile(`^\s*export\s+const\s+(\w+)\s*=\s*\w*[Tt]able\s*\(\s*['"]([^'"]+)['"]`)

	// runId: uuid('run_id')...  anchored at the start of a trimmed line
	columnDeclPattern = regexp.MustCompile(`^(\w+)\s*:\s*(\w+)\s*\(\s*['"]([^'"]+)['"]`)

	// .references(() => validationRuns.runId)
	referencePattern = regexp.MustCompile(`\.references\s*\(\s*\(\s*\)\s*=>\s*(\w+)\.(\w+)`)

	// export * from './validationRuns'  /  export { x } from "./foo"
	reexportPattern = regexp.MustCompile(`^\s*export\s+(?:\*|\{[^}]*\})\s+from\s+['"]\./([\w./-]+)['"]`)
)

// tableHeader is a recognized entity-table declaration header.
type tableHeader struct {
	variable string
	physical string
}

func matchTableHeader(line string) (tableHeader, bool) {
	m := tableHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return tableHeader{}, false
	}
	return tableHeader{variable: m[1], physical: m[2]}, true
}

// columnDecl is a recognized column declaration opener.
type columnDecl struct {
	property  string
	typeToken string
	physical  string
}

func matchColumnDecl(trimmed string) (columnDecl, bool) {
	m := columnDeclPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return columnDecl{}, false
	}
	return columnDecl{property: m[1], typeToken: m[2], physical: m[3]}, true
}

// referenceMarker is a recognized referenced-column accessor.
type referenceMarker struct {
	targetVar      string
	targetProperty string
}

func matchReference(line string) (referenceMarker, bool) {
	m := referencePattern.FindStringSubmatch(line)
	if m == nil {
		return referenceMarker{}, false
	}
	return referenceMarker{targetVar: m[1], targetProperty: m[2]}, true
}

func matchReexport(line string) (string, bool) {
	m := reexportPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// braceDelta returns opening minus closing braces on a line. Braces inside
// string literals are counted too; that is the accepted cost of line-based
// scanning.
func braceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// declarationComplete is the heuristic for closing a multi-line column
// declaration: the trimmed line ends with a statement separator. A chain
// split across several lines without trailing commas can defeat this; that
// approximation is deliberate and covered by tests.
func declarationComplete(trimmed string) bool {
	return strings.HasSuffix(trimmed, ",")
}
