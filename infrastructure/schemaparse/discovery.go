package schemaparse

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const indexFileName = "index.ts"

// SchemaFiles returns the schema-definition files to parse in dir. When an
// index file is present its re-export statements are the authoritative file
// list; otherwise every .ts file directly in the directory (excluding the
// index) is returned. A missing directory yields an empty result with a
// logged warning.
func SchemaFiles(dir string, logger *slog.Logger) []string {
	if logger == nil {
		logger = slog.Default()
	}

	indexPath := filepath.Join(dir, indexFileName)
	if data, err := os.ReadFile(indexPath); err == nil {
		if files := filesFromIndex(dir, string(data), logger); len(files) > 0 {
			return files
		}
		logger.Warn("schema index contains no re-exports, falling back to directory listing",
			slog.String("index", indexPath),
		)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("schema directory not found, skipping",
			slog.String("dir", dir),
		)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if name == indexFileName || !strings.HasSuffix(name, ".ts") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files
}

// filesFromIndex resolves re-export targets to sibling file paths. Targets
// that do not exist on disk are dropped with a warning.
func filesFromIndex(dir, content string, logger *slog.Logger) []string {
	var files []string
	for _, line := range strings.Split(content, "\n") {
		target, ok := matchReexport(line)
		if !ok {
			continue
		}
		if filepath.Ext(target) == "" {
			target += ".ts"
		}
		path := filepath.Join(dir, filepath.FromSlash(target))
		if _, err := os.Stat(path); err != nil {
			logger.Warn("re-exported schema file not found, skipping",
				slog.String("path", path),
			)
			continue
		}
		files = append(files, path)
	}
	return files
}
