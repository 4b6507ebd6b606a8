package scanner

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/internal/config"
	"github.com/schematrace/schematrace/internal/log"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// stub\n"), 0o644))
}

func relPaths(t *testing.T, root string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func testLogger() *slog.Logger {
	return log.NewLoggerWithWriter(io.Discard, config.LogFormatPretty, "error").Slog()
}

func TestWalk_ExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts")
	writeFile(t, root, "b.tsx")
	writeFile(t, root, "c.md")

	w := New(testLogger(), WithExtensions(".ts", ".tsx"))
	files := relPaths(t, root, w.Walk(root))

	assert.ElementsMatch(t, []string{"a.ts", "b.tsx"}, files)
}

func TestWalk_DefaultDirsExcluded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts")
	writeFile(t, root, "node_modules/pkg/index.ts")
	writeFile(t, root, "dist/bundle.ts")
	writeFile(t, root, ".next/static/chunk.ts")

	w := New(testLogger(), WithExtensions(".ts"))
	files := relPaths(t, root, w.Walk(root))

	assert.Equal(t, []string{"src/a.ts"}, files)
}

func TestWalk_ExcludePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts")
	writeFile(t, root, "src/a.test.ts")
	writeFile(t, root, "src/types.d.ts")
	writeFile(t, root, "src/__tests__/b.ts")

	w := New(testLogger(),
		WithExtensions(".ts"),
		WithExcludePatterns("*.test.*", "*.d.ts", "__tests__"),
	)
	files := relPaths(t, root, w.Walk(root))

	assert.Equal(t, []string{"src/a.ts"}, files)
}

func TestWalk_MissingRootIsEmptyNotFatal(t *testing.T) {
	w := New(testLogger())
	assert.Empty(t, w.Walk(filepath.Join(t.TempDir(), "does-not-exist")))
}

func TestWalkAll_ConcatenatesRoots(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts")
	writeFile(t, root, "app/b.ts")

	w := New(testLogger(), WithExtensions(".ts"))
	files := w.WalkAll([]string{
		filepath.Join(root, "src"),
		filepath.Join(root, "app"),
		filepath.Join(root, "gone"),
	})

	assert.Len(t, files, 2)
}
