package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/domain/schema"
	"github.com/schematrace/schematrace/domain/trace"
)

var (
	headerStyle = color.New(color.Bold)
	errorStyle  = color.New(color.FgRed)
	warnStyle   = color.New(color.FgYellow)
	okStyle     = color.New(color.FgGreen)
	dimStyle    = color.New(color.Faint)
)

// WriteSchemaText renders the foreign-key consistency report for humans.
func WriteSchemaText(w io.Writer, r checker.SchemaReport) {
	headerStyle.Fprintln(w, "Foreign-key consistency")
	fmt.Fprintf(w, "  tables: %d  columns: %d  relations: %d\n",
		len(r.Entities), r.Columns, r.Check.Total())
	fmt.Fprintln(w)

	if len(r.Check.TypeMismatches) > 0 {
		errorStyle.Fprintf(w, "Type mismatches (%d)\n", len(r.Check.TypeMismatches))
		for _, rel := range r.Check.TypeMismatches {
			fmt.Fprintf(w, "  %s.%s (%s) -> %s.%s (%s)\n",
				rel.SourceEntity, rel.SourceColumn, schema.NormalizeType(rel.SourceType),
				rel.TargetEntity, rel.TargetColumn, schema.NormalizeType(rel.TargetType))
			dimStyle.Fprintf(w, "    %s:%d\n", rel.SourceFile, rel.LineNumber)
		}
		fmt.Fprintln(w)
	}

	if len(r.Check.UnresolvedTargets) > 0 {
		warnStyle.Fprintf(w, "Unresolved targets (%d)\n", len(r.Check.UnresolvedTargets))
		for _, rel := range r.Check.UnresolvedTargets {
			fmt.Fprintf(w, "  %s.%s -> %s.%s\n",
				rel.SourceEntity, rel.SourceColumn, rel.TargetVar, rel.TargetColumn)
			dimStyle.Fprintf(w, "    %s:%d\n", rel.SourceFile, rel.LineNumber)
		}
		fmt.Fprintln(w)
	}

	if r.Check.HasErrors() {
		errorStyle.Fprintf(w, "FAIL: %d type mismatch(es)\n", len(r.Check.TypeMismatches))
	} else {
		okStyle.Fprintf(w, "OK: %d relation(s) resolved cleanly\n", len(r.Check.Resolved))
	}
}

// WriteCoverageText renders the coverage report for humans.
func WriteCoverageText(w io.Writer, r checker.CoverageReport) {
	headerStyle.Fprintln(w, "Table coverage")
	fmt.Fprintf(w, "  files scanned: %d  tables referenced: %d  tables declared: %d\n",
		r.FilesScanned, r.TablesReferenced, r.TablesDeclared)
	fmt.Fprintln(w)

	if len(r.MissingInSchema) > 0 {
		errorStyle.Fprintf(w, "Referenced but not declared (%d)\n", len(r.MissingInSchema))
		for _, missing := range r.MissingInSchema {
			fmt.Fprintf(w, "  %s (%d reference(s))\n", missing.PhysicalName, len(missing.References))
			for _, ref := range missing.References {
				dimStyle.Fprintf(w, "    %s:%d  %s\n", ref.FilePath, ref.LineNumber, ref.ContextLine)
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.UnusedInCode) > 0 {
		warnStyle.Fprintf(w, "Declared but never referenced (%d)\n", len(r.UnusedInCode))
		for _, unused := range r.UnusedInCode {
			fmt.Fprintf(w, "  %s\n", unused.PhysicalName)
			dimStyle.Fprintf(w, "    %s\n", unused.SourceFile)
		}
		fmt.Fprintln(w)
	}

	if r.HasErrors() {
		errorStyle.Fprintf(w, "FAIL: %d table(s) missing from schema\n", len(r.MissingInSchema))
	} else {
		okStyle.Fprintln(w, "OK: every referenced table is declared")
	}
}

// WriteTraceText renders the traceability report for humans.
func WriteTraceText(w io.Writer, r checker.TraceReport) {
	headerStyle.Fprintln(w, "Requirement traceability")
	fmt.Fprintf(w, "  requirements: %d  complete: %d  partial: %d  gap: %d  orphans: %d\n",
		r.Summary.Requirements, r.Summary.Complete, r.Summary.Partial, r.Summary.Gap, r.Summary.Orphans)
	fmt.Fprintln(w)

	for _, entry := range r.Result.Requirements {
		style := okStyle
		switch entry.Status {
		case trace.StatusPartial:
			style = warnStyle
		case trace.StatusGap:
			style = errorStyle
		}
		style.Fprintf(w, "  [%s] %s", entry.Status, entry.ID)
		fmt.Fprintf(w, "  %s\n", entry.Title)
	}
	fmt.Fprintln(w)

	if len(r.Summary.UnknownIDs) > 0 {
		warnStyle.Fprintf(w, "Unknown requirement IDs (%d): %v\n", len(r.Summary.UnknownIDs), r.Summary.UnknownIDs)
	}
	if r.Summary.DroppedBaseline > 0 {
		warnStyle.Fprintf(w, "Dropped baseline links to missing files: %d\n", r.Summary.DroppedBaseline)
	}
	if r.HasErrors() {
		errorStyle.Fprintf(w, "FAIL: %d requirement(s) with no implementation or tests\n", r.Summary.Gap)
	} else {
		okStyle.Fprintln(w, "OK: no requirement gaps")
	}
}
