// Package scanner provides read-only source-tree traversal with extension
// filters and exclusion rules shared by every checker.
package scanner

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExcludedDirs are directory names skipped in any scan.
var DefaultExcludedDirs = []string{
	"node_modules",
	".git",
	"dist",
	"build",
	".next",
	"coverage",
	"vendor",
}

// Walker enumerates candidate source files under one or more roots.
type Walker struct {
	extensions   map[string]bool
	excludedDirs map[string]bool
	patterns     []string
	logger       *slog.Logger
}

// Option configures a Walker.
type Option func(*Walker)

// WithExtensions restricts results to the given extensions (with leading
// dot, e.g. ".ts").
func WithExtensions(exts ...string) Option {
	return func(w *Walker) {
		for _, ext := range exts {
			w.extensions[strings.ToLower(ext)] = true
		}
	}
}

// WithExcludedDirs adds exact directory-name exclusions.
func WithExcludedDirs(dirs ...string) Option {
	return func(w *Walker) {
		for _, d := range dirs {
			w.excludedDirs[d] = true
		}
	}
}

// WithExcludePatterns adds glob-like path exclusions. A pattern containing
// a path separator matches against the slash-normalized relative path;
// otherwise it matches against each path component.
func WithExcludePatterns(patterns ...string) Option {
	return func(w *Walker) {
		w.patterns = append(w.patterns, patterns...)
	}
}

// New creates a Walker with the default directory exclusions.
func New(logger *slog.Logger, opts ...Option) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Walker{
		extensions:   make(map[string]bool),
		excludedDirs: make(map[string]bool),
		logger:       logger,
	}
	for _, d := range DefaultExcludedDirs {
		w.excludedDirs[d] = true
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk returns every matching file under root, recursing through
// subdirectories except excluded ones. A missing root yields an empty result
// with a logged warning so callers scanning several roots keep going.
func (w *Walker) Walk(root string) []string {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		w.logger.Warn("scan root not found, skipping",
			slog.String("root", root),
		)
		return nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("skipping unreadable path",
				slog.String("path", path),
				slog.Any("error", err),
			)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path != root && (w.excludedDirs[d.Name()] || w.matchesPattern(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if w.matchesPattern(rel) {
			return nil
		}
		if len(w.extensions) > 0 && !w.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		w.logger.Warn("walk aborted",
			slog.String("root", root),
			slog.Any("error", err),
		)
	}
	return files
}

// WalkAll walks several roots and concatenates the results. Partial
// unavailability of one root never aborts the others.
func (w *Walker) WalkAll(roots []string) []string {
	var files []string
	for _, root := range roots {
		files = append(files, w.Walk(root)...)
	}
	return files
}

func (w *Walker) matchesPattern(rel string) bool {
	for _, pattern := range w.patterns {
		if strings.ContainsRune(pattern, '/') {
			if ok, err := filepath.Match(pattern, rel); err == nil && ok {
				return true
			}
			if strings.Contains(rel, strings.Trim(pattern, "*")) {
				return true
			}
			continue
		}
		for _, part := range strings.Split(rel, "/") {
			if ok, err := filepath.Match(pattern, part); err == nil && ok {
				return true
			}
		}
	}
	return false
}
