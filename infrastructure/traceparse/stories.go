package traceparse

import (
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// ### US-123: Title of the story
var storyHeadingPattern = regexp.MustCompile(`^#{2,4}\s+([A-Z]{2,5}-\d+)\s*[:\-]\s*(.+?)\s*$`)

// ParseDefinitions extracts the requirement universe (ID to title) from
// story markdown content. Later duplicates of an ID win.
func ParseDefinitions(content string) map[string]string {
	definitions := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		m := storyHeadingPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		definitions[m[1]] = m[2]
	}
	return definitions
}

// LoadDefinitions reads every story document and merges their definitions.
// Missing documents are skipped with a warning, never fatal.
func LoadDefinitions(paths []string, logger *slog.Logger) map[string]string {
	if logger == nil {
		logger = slog.Default()
	}
	definitions := make(map[string]string)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("story document not found, skipping",
				slog.String("path", path),
			)
			continue
		}
		for id, title := range ParseDefinitions(string(data)) {
			definitions[id] = title
		}
	}
	return definitions
}
