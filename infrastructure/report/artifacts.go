package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/domain/trace"
)

// Artifact file names written by the trace checker.
const (
	TraceabilityFile = "traceability.json"
	GapReportFile    = "gap-report.md"
	OrphanReportFile = "orphan-report.md"
)

// WriteTraceArtifacts writes the generated traceability artifacts into dir.
// All three are pure functions of the report and safe to overwrite.
func WriteTraceArtifacts(dir, version string, r checker.TraceReport) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	data, err := MarshalJSONReport(version, r)
	if err != nil {
		return fmt.Errorf("marshal traceability report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, TraceabilityFile), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", TraceabilityFile, err)
	}

	if err := os.WriteFile(filepath.Join(dir, GapReportFile), []byte(renderGapReport(r)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", GapReportFile, err)
	}
	if err := os.WriteFile(filepath.Join(dir, OrphanReportFile), []byte(renderOrphanReport(r)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", OrphanReportFile, err)
	}
	return nil
}

// renderGapReport lists requirements that lack implementation or test
// links.
func renderGapReport(r checker.TraceReport) string {
	var b strings.Builder
	b.WriteString("# Requirement gap report\n\n")
	fmt.Fprintf(&b, "Requirements: %d, complete: %d, partial: %d, gap: %d.\n\n",
		r.Summary.Requirements, r.Summary.Complete, r.Summary.Partial, r.Summary.Gap)

	writeStatusSection(&b, "Gaps (no implementation, no tests)", r, trace.StatusGap)
	writeStatusSection(&b, "Partial (implementation or tests, not both)", r, trace.StatusPartial)

	if len(r.Summary.UnknownIDs) > 0 {
		b.WriteString("## Unknown requirement IDs\n\n")
		for _, id := range r.Summary.UnknownIDs {
			fmt.Fprintf(&b, "- %s\n", id)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeStatusSection(b *strings.Builder, title string, r checker.TraceReport, status trace.Status) {
	var entries []*trace.Entry
	for _, entry := range r.Result.Requirements {
		if entry.Status == status {
			entries = append(entries, entry)
		}
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(entries) == 0 {
		b.WriteString("None.\n\n")
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(b, "- **%s** %s", entry.ID, entry.Title)
		if entry.Notes != "" {
			fmt.Fprintf(b, " (%s)", entry.Notes)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// renderOrphanReport lists source files with no linked requirement.
func renderOrphanReport(r checker.TraceReport) string {
	var b strings.Builder
	b.WriteString("# Orphaned file report\n\n")
	fmt.Fprintf(&b, "Source files with no linked requirement: %d.\n\n", len(r.Orphans))
	for _, file := range r.Orphans {
		fmt.Fprintf(&b, "- `%s`\n", file)
	}
	if len(r.Orphans) == 0 {
		b.WriteString("None.\n")
	}
	return b.String()
}
