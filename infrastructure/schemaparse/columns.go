package schemaparse

import (
	"strings"

	"github.com/schematrace/schematrace/domain/schema"
)

// FileResult holds everything one schema file contributes.
type FileResult struct {
	Entities  []schema.Entity
	Columns   []schema.Column
	Relations []schema.Relation
}

// openColumn is the per-column parser state: the most recent column
// declaration whose statement has not yet completed. A relationship marker
// seen while a column is open attributes to that column even when the marker
// sits on a continuation line.
type openColumn struct {
	decl columnDecl
	line int
}

// ParseFile runs the depth-tracked line scan over one schema file and
// extracts entities, block-scoped columns, and foreign-key relations.
//
// State per line: the currently open table block (from its header line until
// brace depth returns to zero, at which point the state resets so extraction
// cannot leak into a later block) and the currently open column declaration
// (until a relationship marker is found or the statement completes).
func ParseFile(content, sourceFile string) FileResult {
	var result FileResult

	currentTable := ""
	depth := 0
	var current *openColumn

	for i, line := range strings.Split(content, "\n") {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if currentTable == "" {
			header, ok := matchTableHeader(line)
			if !ok {
				continue
			}
			result.Entities = append(result.Entities, schema.Entity{
				VariableName: header.variable,
				PhysicalName: header.physical,
				SourceFile:   sourceFile,
			})
			currentTable = header.physical
			depth = braceDelta(line)
			if depth <= 0 {
				currentTable = ""
			}
			continue
		}

		if decl, ok := matchColumnDecl(trimmed); ok {
			result.Columns = append(result.Columns, schema.Column{
				EntityPhysicalName: currentTable,
				PropertyName:       decl.property,
				PhysicalColumnName: decl.physical,
				DeclaredType:       decl.typeToken,
				SourceFile:         sourceFile,
				LineNumber:         lineNo,
			})
			current = &openColumn{decl: decl, line: lineNo}
		}

		if ref, ok := matchReference(line); ok && current != nil {
			result.Relations = append(result.Relations, schema.Relation{
				SourceEntity: currentTable,
				SourceColumn: current.decl.physical,
				SourceType:   current.decl.typeToken,
				TargetVar:    ref.targetVar,
				TargetColumn: ref.targetProperty,
				SourceFile:   sourceFile,
				LineNumber:   current.line,
			})
			current = nil
		} else if current != nil && declarationComplete(trimmed) {
			current = nil
		}

		depth += braceDelta(line)
		if depth <= 0 {
			currentTable = ""
			current = nil
			depth = 0
		}
	}

	return result
}
