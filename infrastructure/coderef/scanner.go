// Package coderef scans application source for call-sites that reference a
// physical table name by string literal.
package coderef

import (
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/schematrace/schematrace/domain/reference"
)

// fromCallPattern matches the table accessor, optionally with a generic
// type parameter before the parenthesis: .from('x') or .from<Row>('x').
var fromCallPattern = regexp.MustCompile("\\.from\\s*(?:<[^>]*>)?\\s*\\(\\s*['\"`]([^'\"`]+)['\"`]")

// Scanner extracts table references from a set of source files. File reads
// run across a bounded worker pool; result merging is order-independent and
// the final slice is sorted for deterministic reports.
type Scanner struct {
	workers int
	logger  *slog.Logger
}

// NewScanner creates a Scanner. workers <= 0 means sequential.
func NewScanner(workers int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &Scanner{workers: workers, logger: logger}
}

// Scan extracts every table reference from the given files. A file that
// cannot be read contributes nothing; the rest of the scan continues.
func (s *Scanner) Scan(files []string) []reference.CodeReference {
	var (
		mu   sync.Mutex
		refs []reference.CodeReference
	)

	var g errgroup.Group
	g.SetLimit(s.workers)
	for _, file := range files {
		file := file
		g.Go(func() error {
			data, err := os.ReadFile(file)
			if err != nil {
				s.logger.Warn("unreadable source file, skipping",
					slog.String("file", file),
					slog.Any("error", err),
				)
				return nil
			}
			found := extractReferences(string(data), file)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			refs = append(refs, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(refs, func(i, j int) bool {
		if refs[i].FilePath != refs[j].FilePath {
			return refs[i].FilePath < refs[j].FilePath
		}
		return refs[i].LineNumber < refs[j].LineNumber
	})
	return refs
}

// extractReferences finds table accessor calls in file content. Literals
// containing interpolation markers are templated, not true literals, and
// are skipped.
func extractReferences(content, file string) []reference.CodeReference {
	var refs []reference.CodeReference
	for i, line := range strings.Split(content, "\n") {
		for _, m := range fromCallPattern.FindAllStringSubmatch(line, -1) {
			name := m[1]
			if strings.Contains(name, "${") {
				continue
			}
			refs = append(refs, reference.CodeReference{
				PhysicalName: name,
				FilePath:     file,
				LineNumber:   i + 1,
				ContextLine:  strings.TrimSpace(line),
			})
		}
	}
	return refs
}
