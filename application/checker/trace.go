package checker

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/schematrace/schematrace/domain/trace"
	"github.com/schematrace/schematrace/infrastructure/scanner"
	"github.com/schematrace/schematrace/infrastructure/traceparse"
	"github.com/schematrace/schematrace/internal/config"
)

// TraceSummary aggregates counts for the traceability report.
type TraceSummary struct {
	Requirements    int      `json:"requirements"`
	Complete        int      `json:"complete"`
	Partial         int      `json:"partial"`
	Gap             int      `json:"gap"`
	Orphans         int      `json:"orphans"`
	DroppedBaseline int      `json:"dropped_baseline_links"`
	UnknownIDs      []string `json:"unknown_ids,omitempty"`
}

// TraceReport is the merged traceability state plus derived findings.
type TraceReport struct {
	Result  trace.Result `json:"result"`
	Orphans []string     `json:"orphans"`
	Summary TraceSummary `json:"summary"`
}

// HasErrors reports whether error-level findings exist. Requirements with
// no implementation or test links are errors; orphaned files and unknown
// IDs are warnings.
func (r TraceReport) HasErrors() bool {
	return r.Summary.Gap > 0
}

// TraceChecker runs the annotation and traceability merge pipeline.
type TraceChecker struct {
	cfg    config.AppConfig
	root   string
	logger *slog.Logger
}

// NewTraceChecker creates a TraceChecker rooted at the project directory.
func NewTraceChecker(cfg config.AppConfig, root string, logger *slog.Logger) *TraceChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &TraceChecker{cfg: cfg, root: root, logger: logger}
}

// Run executes the three merge phases in precedence order: baseline links
// first, annotations second, manual overrides last.
func (c *TraceChecker) Run() TraceReport {
	definitions := traceparse.LoadDefinitions(c.rooted(c.cfg.StoryDocs()), c.logger)
	matrix := trace.NewMatrix(definitions)

	baseline, dropped := c.baselineLinks()
	matrix.ApplyBaseline(baseline)

	overrides := c.loadOverrides()

	scanned := c.scanSourceFiles()
	scanned = append(scanned, c.extraAnnotationFiles(overrides)...)
	annotations := traceparse.NewAnnotationScanner(c.cfg.WorkerCount(), c.logger).Scan(scanned)
	annotations = c.relativize(annotations)
	matrix.ApplyAnnotations(annotations)

	for _, o := range overrides {
		matrix.ApplyOverride(o)
	}

	result := matrix.Finalize()
	orphans := c.orphans(scanned, result.FileIndex)

	summary := TraceSummary{
		Requirements:    len(result.Requirements),
		Orphans:         len(orphans),
		DroppedBaseline: dropped,
		UnknownIDs:      result.UnknownIDs,
	}
	for _, entry := range result.Requirements {
		switch entry.Status {
		case trace.StatusComplete:
			summary.Complete++
		case trace.StatusPartial:
			summary.Partial++
		default:
			summary.Gap++
		}
	}

	return TraceReport{Result: result, Orphans: orphans, Summary: summary}
}

// baselineLinks parses both baseline documents and drops links to files
// that do not exist on disk, returning the kept links and the drop count.
func (c *TraceChecker) baselineLinks() ([]trace.Link, int) {
	var links []trace.Link
	if path := c.cfg.TestMatrixPath(); path != "" {
		if data, ok := c.readDoc(path); ok {
			links = append(links, traceparse.ParseTestMatrix(data)...)
		}
	}
	if path := c.cfg.FeatureInventoryPath(); path != "" {
		if data, ok := c.readDoc(path); ok {
			links = append(links, traceparse.ParseFeatureInventory(data)...)
		}
	}
	kept := traceparse.DropDangling(links, c.root, c.logger)
	return kept, len(links) - len(kept)
}

// loadOverrides reads and validates the override document. A malformed
// document contributes nothing for the whole run.
func (c *TraceChecker) loadOverrides() []trace.Override {
	path := c.cfg.OverridesPath()
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(filepath.Join(c.root, path))
	if err != nil {
		c.logger.Warn("override document not found, skipping",
			slog.String("path", path),
		)
		return nil
	}
	overrides, err := traceparse.ParseOverrides(data, c.logger)
	if err != nil {
		c.logger.Error("override document unparseable, skipping all overrides",
			slog.String("path", path),
			slog.Any("error", err),
		)
		return nil
	}
	return overrides
}

// scanSourceFiles enumerates annotation candidates: all source files,
// tests included.
func (c *TraceChecker) scanSourceFiles() []string {
	walk := scanner.New(c.logger,
		scanner.WithExtensions(sourceExtensions...),
		scanner.WithExcludePatterns(c.cfg.ExcludePatterns()...),
	)
	roots := c.cfg.SourceRoots()
	rooted := make([]string, len(roots))
	for i, r := range roots {
		rooted[i] = filepath.Join(c.root, r)
	}
	return walk.WalkAll(rooted)
}

// extraAnnotationFiles resolves override extraction-hint globs against the
// project root.
func (c *TraceChecker) extraAnnotationFiles(overrides []trace.Override) []string {
	var files []string
	for _, o := range overrides {
		for _, pattern := range o.ExtraAnnotationGlobs {
			matches, err := filepath.Glob(filepath.Join(c.root, filepath.FromSlash(pattern)))
			if err != nil {
				c.logger.Warn("invalid annotation glob, skipping",
					slog.String("requirement", o.RequirementID),
					slog.String("glob", pattern),
				)
				continue
			}
			files = append(files, matches...)
		}
	}
	return files
}

// relativize rewrites annotation file paths to slash-normalized paths
// relative to the project root, matching the path shape used by baselines.
func (c *TraceChecker) relativize(annotations []trace.Annotation) []trace.Annotation {
	for i, a := range annotations {
		annotations[i].File = c.relPath(a.File)
	}
	return annotations
}

// orphans returns scanned code-family files with no linked requirement,
// sorted.
func (c *TraceChecker) orphans(scanned []string, fileIndex map[string][]string) []string {
	var orphans []string
	seen := make(map[string]bool)
	for _, file := range scanned {
		rel := c.relPath(file)
		if seen[rel] {
			continue
		}
		seen[rel] = true
		if !isCodeFamily(trace.FileTypeForPath(rel)) {
			continue
		}
		if len(fileIndex[rel]) == 0 {
			orphans = append(orphans, rel)
		}
	}
	sort.Strings(orphans)
	return orphans
}

func (c *TraceChecker) relPath(path string) string {
	rel, err := filepath.Rel(c.root, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func (c *TraceChecker) rooted(paths []string) []string {
	rooted := make([]string, len(paths))
	for i, p := range paths {
		rooted[i] = filepath.Join(c.root, filepath.FromSlash(p))
	}
	return rooted
}

func (c *TraceChecker) readDoc(path string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(c.root, filepath.FromSlash(path)))
	if err != nil {
		c.logger.Warn("baseline document not found, skipping",
			slog.String("path", path),
		)
		return "", false
	}
	return string(data), true
}

func isCodeFamily(t trace.FileType) bool {
	for _, ct := range trace.CodeFileTypes {
		if t == ct {
			return true
		}
	}
	return false
}
