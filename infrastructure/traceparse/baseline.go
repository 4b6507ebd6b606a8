package traceparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/schematrace/schematrace/domain/trace"
)

var (
	storyIDListPattern = regexp.MustCompile(`[A-Z]{2,5}-\d+`)

	// source-file-looking tokens inside inventory sections, e.g.
	// components/ValidationPanel.tsx or src/hooks/useRuns.ts
	filePathTokenPattern = regexp.MustCompile(`[\w@][\w./\[\]-]*\.(?:tsx?|jsx?|mjs)`)

	userStoriesPrefix = regexp.MustCompile(`(?i)^\*{0,2}user stories\*{0,2}\s*:\s*(.+)$`)
)

// ParseTestMatrix extracts links from a markdown pipe table containing a
// story-identifier column and a test-file column. Rows without a valid
// story ID or file path contribute nothing.
func ParseTestMatrix(content string) []trace.Link {
	var links []trace.Link
	storyCol, fileCol := -1, -1

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "|") {
			continue
		}
		cells := splitTableRow(trimmed)

		if storyCol < 0 {
			for i, cell := range cells {
				lower := strings.ToLower(cell)
				if strings.Contains(lower, "story") {
					storyCol = i
				}
				if strings.Contains(lower, "test file") {
					fileCol = i
				}
			}
			continue
		}
		if fileCol < 0 || storyCol >= len(cells) || fileCol >= len(cells) {
			continue
		}
		if isSeparatorRow(cells) {
			continue
		}

		file := strings.Trim(cells[fileCol], "` ")
		if file == "" || !filePathTokenPattern.MatchString(file) {
			continue
		}
		for _, id := range storyIDListPattern.FindAllString(cells[storyCol], -1) {
			links = append(links, trace.Link{
				RequirementID: id,
				FilePath:      file,
				FileType:      trace.FileTypeForPath(file),
			})
		}
	}
	return links
}

// ParseFeatureInventory extracts links from a document organized into
// ##-level sections, each carrying a "User Stories:" line; file-path-looking
// tokens in the section body attach to those stories.
func ParseFeatureInventory(content string) []trace.Link {
	var links []trace.Link
	var sectionIDs []string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "## ") {
			sectionIDs = nil
			continue
		}
		if m := userStoriesPrefix.FindStringSubmatch(trimmed); m != nil {
			sectionIDs = storyIDListPattern.FindAllString(m[1], -1)
			continue
		}
		if len(sectionIDs) == 0 {
			continue
		}
		for _, token := range filePathTokenPattern.FindAllString(trimmed, -1) {
			fileType := trace.FileTypeForPath(token)
			for _, id := range sectionIDs {
				links = append(links, trace.Link{
					RequirementID: id,
					FilePath:      token,
					FileType:      fileType,
				})
			}
		}
	}
	return links
}

// DropDangling removes links whose file does not exist under root. Each
// dropped link is logged; a baseline must never contribute a dangling
// reference.
func DropDangling(links []trace.Link, root string, logger *slog.Logger) []trace.Link {
	if logger == nil {
		logger = slog.Default()
	}
	kept := links[:0:0]
	for _, link := range links {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(link.FilePath))); err != nil {
			logger.Warn("baseline references missing file, dropping",
				slog.String("requirement", link.RequirementID),
				slog.String("file", link.FilePath),
			)
			continue
		}
		kept = append(kept, link)
	}
	return kept
}

func splitTableRow(row string) []string {
	row = strings.Trim(row, "|")
	parts := strings.Split(row, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if strings.Trim(cell, ":-") != "" {
			return false
		}
	}
	return true
}
