package schemaparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchemaFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func baseNames(files []string) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, filepath.Base(f))
	}
	return out
}

func TestSchemaFiles_IndexReexportsAreAuthoritative(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.ts", "")
	writeSchemaFile(t, dir, "runs.ts", "")
	writeSchemaFile(t, dir, "orphan.ts", "")
	writeSchemaFile(t, dir, "index.ts", "export * from './users';\nexport { projects } from './runs';\n")

	files := SchemaFiles(dir, nil)

	assert.Equal(t, []string{"users.ts", "runs.ts"}, baseNames(files),
		"index order preserved, non-exported files excluded")
}

func TestSchemaFiles_MissingReexportTargetDropped(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.ts", "")
	writeSchemaFile(t, dir, "index.ts", "export * from './users';\nexport * from './gone';\n")

	files := SchemaFiles(dir, nil)

	assert.Equal(t, []string{"users.ts"}, baseNames(files))
}

func TestSchemaFiles_FallbackListsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.ts", "")
	writeSchemaFile(t, dir, "runs.ts", "")
	writeSchemaFile(t, dir, "notes.md", "")

	files := SchemaFiles(dir, nil)

	assert.ElementsMatch(t, []string{"users.ts", "runs.ts"}, baseNames(files))
}

func TestSchemaFiles_EmptyIndexFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeSchemaFile(t, dir, "users.ts", "")
	writeSchemaFile(t, dir, "index.ts", "// no re-exports yet\n")

	files := SchemaFiles(dir, nil)

	assert.Equal(t, []string{"users.ts"}, baseNames(files), "index itself never parsed for tables")
}

func TestSchemaFiles_MissingDirectory(t *testing.T) {
	assert.Empty(t, SchemaFiles(filepath.Join(t.TempDir(), "absent"), nil))
}
