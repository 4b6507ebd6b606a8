// Package traceparse extracts traceability inputs: requirement-tag
// annotations from source comments, requirement definitions and baseline
// links from markdown documents, and manual overrides from YAML.
package traceparse

import (
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/schematrace/schematrace/domain/trace"
)

var (
	// @story US-123  /  @story: US-12, US-34
	storyTagPattern = regexp.MustCompile(`@story[:\s]\s*([A-Z]{2,5}-\d+(?:\s*,\s*[A-Z]{2,5}-\d+)*)`)

	storyIDPattern = regexp.MustCompile(`^[A-Z]{2,5}-\d+$`)
)

// AnnotationScanner extracts requirement-tag comments from source files.
type AnnotationScanner struct {
	workers int
	logger  *slog.Logger
}

// NewAnnotationScanner creates an AnnotationScanner. workers <= 0 means
// sequential.
func NewAnnotationScanner(workers int, logger *slog.Logger) *AnnotationScanner {
	if logger == nil {
		logger = slog.Default()
	}
	if workers <= 0 {
		workers = 1
	}
	return &AnnotationScanner{workers: workers, logger: logger}
}

// Scan extracts annotations from the given files, tagging each with the
// file's path-inferred type. Unreadable files contribute nothing.
func (s *AnnotationScanner) Scan(files []string) []trace.Annotation {
	var (
		mu          sync.Mutex
		annotations []trace.Annotation
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
			found := extractAnnotations(string(data), file)
			if len(found) == 0 {
				return nil
			}
			mu.Lock()
			annotations = append(annotations, found...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(annotations, func(i, j int) bool {
		if annotations[i].File != annotations[j].File {
			return annotations[i].File < annotations[j].File
		}
		return annotations[i].Line < annotations[j].Line
	})
	return annotations
}

// extractAnnotations yields one annotation per physical tag occurrence.
func extractAnnotations(content, file string) []trace.Annotation {
	fileType := trace.FileTypeForPath(file)
	var annotations []trace.Annotation
	for i, line := range strings.Split(content, "\n") {
		for _, m := range storyTagPattern.FindAllStringSubmatch(line, -1) {
			annotations = append(annotations, trace.Annotation{
				File:      file,
				Line:      i + 1,
				TaggedIDs: splitStoryIDs(m[1]),
				FileType:  fileType,
			})
		}
	}
	return annotations
}

func splitStoryIDs(list string) []string {
	var ids []string
	for _, part := range strings.Split(list, ",") {
		id := strings.TrimSpace(part)
		if storyIDPattern.MatchString(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
