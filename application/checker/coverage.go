package checker

import (
	"log/slog"
	"path/filepath"

	"github.com/schematrace/schematrace/domain/reference"
	"github.com/schematrace/schematrace/infrastructure/coderef"
	"github.com/schematrace/schematrace/infrastructure/scanner"
	"github.com/schematrace/schematrace/internal/config"
)

// sourceExtensions are the application source extensions scanned for table
// references and annotations.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// coverageExcludes removes test, fixture, and declaration-only paths from
// the code-reference scan.
var coverageExcludes = []string{
	"*.test.*",
	"*.spec.*",
	"*.d.ts",
	"__tests__",
	"__fixtures__",
	"fixtures",
	"e2e",
}

// CoverageReport wraps the coverage set differences with run context.
type CoverageReport struct {
	reference.CoverageReport
	FilesScanned int `json:"files_scanned"`
}

// CoverageChecker runs the table usage/definition coverage check.
type CoverageChecker struct {
	cfg    config.AppConfig
	root   string
	logger *slog.Logger
}

// NewCoverageChecker creates a CoverageChecker rooted at the project
// directory.
func NewCoverageChecker(cfg config.AppConfig, root string, logger *slog.Logger) *CoverageChecker {
	if logger == nil {
		logger = slog.Default()
	}
	return &CoverageChecker{cfg: cfg, root: root, logger: logger}
}

// Run scans application code for table references and diffs them against
// the declared schema entities.
func (c *CoverageChecker) Run() CoverageReport {
	parsed := parseSchemaDir(filepath.Join(c.root, c.cfg.SchemaDir()), c.logger)

	walk := scanner.New(c.logger,
		scanner.WithExtensions(sourceExtensions...),
		scanner.WithExcludePatterns(coverageExcludes...),
		scanner.WithExcludePatterns(c.cfg.ExcludePatterns()...),
	)
	files := walk.WalkAll(c.rootedSourceRoots())

	refs := coderef.NewScanner(c.cfg.WorkerCount(), c.logger).Scan(files)
	grouped := reference.GroupByTable(refs)

	report := reference.Coverage(grouped, parsed.Entities, c.cfg.KnownExternal())
	return CoverageReport{CoverageReport: report, FilesScanned: len(files)}
}

func (c *CoverageChecker) rootedSourceRoots() []string {
	roots := c.cfg.SourceRoots()
	rooted := make([]string, len(roots))
	for i, r := range roots {
		rooted[i] = filepath.Join(c.root, r)
	}
	return rooted
}
