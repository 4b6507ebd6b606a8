// Package checker wires the scanners, extractors, and merge pipeline into
// the three checkers exposed by the CLI. Each checker walks its inputs
// once, accumulates results in memory, and returns a report value; nothing
// is persisted between runs.
package checker

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schematrace/schematrace/domain/schema"
	"github.com/schematrace/schematrace/infrastructure/schemaparse"
	"github.com/schematrace/schematrace/internal/config"
)

// SchemaReport is the foreign-key consistency check result.
type SchemaReport struct {
	Entities []schema.Entity          `json:"entities"`
	Columns  int                      `json:"columns"`
	Check    schema.ConsistencyReport `json:"check"`
}

// HasErrors reports whether error-level findings exist. Type mismatches are
// errors; unresolved targets are warnings.
func (r SchemaReport) HasErrors() bool {
	return r.Check.HasErrors()
}

// SchemaChecker runs the foreign-key consistency check.
type SchemaChecker struct {
	cfg    config.AppConfig
	root   string
	logger *slog.Logger
}

// NewSchemaChecker creates a SchemaChecker rooted at the project directory.
func NewSchemaChecker(cfg config.AppConfig, root string, logger *slog.Logger) *SchemaChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaChecker{cfg: cfg, root: root, logger: logger}
}

// Run parses every schema file, builds the symbol table, and resolves all
// extracted relations. A file that cannot be read contributes nothing.
func (c *SchemaChecker) Run() SchemaReport {
	parsed := parseSchemaDir(filepath.Join(c.root, c.cfg.SchemaDir()), c.logger)

	table := schema.NewSymbolTable(parsed.Entities, parsed.Columns)
	check := table.Resolve(parsed.Relations)

	for _, rel := range check.UnresolvedTargets {
		c.logger.Warn("unresolved relation target",
			slog.String("source", rel.SourceEntity+"."+rel.SourceColumn),
			slog.String("target", rel.TargetVar+"."+rel.TargetColumn),
			slog.String("file", rel.SourceFile),
			slog.Int("line", rel.LineNumber),
		)
	}

	return SchemaReport{
		Entities: parsed.Entities,
		Columns:  len(parsed.Columns),
		Check:    check,
	}
}

// parseSchemaDir parses all discovered schema files into one accumulated
// result.
func parseSchemaDir(dir string, logger *slog.Logger) schemaparse.FileResult {
	var acc schemaparse.FileResult
	for _, file := range schemaparse.SchemaFiles(dir, logger) {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("unreadable schema file, skipping",
				slog.String("file", file),
				slog.Any("error", err),
			)
			continue
		}
		result := schemaparse.ParseFile(string(data), file)
		acc.Entities = append(acc.Entities, result.Entities...)
		acc.Columns = append(acc.Columns, result.Columns...)
		acc.Relations = append(acc.Relations, result.Relations...)
	}
	return acc
}
