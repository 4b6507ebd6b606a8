package checker

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/domain/trace"
	"github.com/schematrace/schematrace/internal/config"
	"github.com/schematrace/schematrace/internal/log"
)

func quietLogger() *slog.Logger {
	return log.NewLoggerWithWriter(io.Discard, config.LogFormatPretty, "error").Slog()
}

func writeProjectFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// fixtureProject lays out a small application with two schema entities, one
// resolvable foreign key, references to an undeclared table, annotated and
// unannotated source files, and the full set of trace input documents.
func fixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeProjectFile(t, root, "src/db/schema/index.ts",
		"export * from './profiles';\nexport * from './projects';\n")
	writeProjectFile(t, root, "src/db/schema/profiles.ts", `import { pgTable, uuid, text } from 'drizzle-orm/pg-core';

export const userProfiles = pgTable('user_profiles', {
  id: uuid('id').primaryKey(),
  email: text('email').notNull(),
});
`)
	writeProjectFile(t, root, "src/db/schema/projects.ts", `import { pgTable, uuid, text } from 'drizzle-orm/pg-core';
import { userProfiles } from './profiles';

export const projects = pgTable('projects', {
  id: uuid('id').primaryKey(),
  userId: uuid('user_id')
    .notNull()
    .references(() => userProfiles.id),
  name: text('name'),
});
`)

	writeProjectFile(t, root, "src/lib/db.ts", `// @story US-1
export const profiles = () => client.from('user_profiles').select();
export const projectList = () => client.from('projects').select();
export const runs = () => client.from('validation_runs').select();
export const insertRun = (row) => client.from('validation_runs').insert(row);
`)
	writeProjectFile(t, root, "src/components/RunForm.tsx",
		"// @story US-1\nexport function RunForm() { return null; }\n")
	writeProjectFile(t, root, "src/hooks/useNothing.ts",
		"export function useNothing() {}\n")

	writeProjectFile(t, root, "e2e/run.spec.ts", "test('run', () => {});\n")

	writeProjectFile(t, root, "docs/stories.md",
		"# Stories\n\n### US-1: Create a validation run\n\n### US-2: Export results\n")
	writeProjectFile(t, root, "docs/test-matrix.md",
		"| Story | Test File |\n|-------|-----------|\n| US-1 | `e2e/run.spec.ts` |\n")
	writeProjectFile(t, root, "overrides.yml",
		"US-2:\n  notes: export postponed\n  db_tables:\n    - validation_runs\n")

	return root
}

func fixtureConfig() config.AppConfig {
	return config.NewAppConfigWithOptions(
		config.WithSourceRoots([]string{"src"}),
		config.WithStoryDocs([]string{"docs/stories.md"}),
		config.WithTestMatrixPath("docs/test-matrix.md"),
		config.WithOverridesPath("overrides.yml"),
		config.WithWorkerCount(2),
	)
}

func TestSchemaChecker_ResolvesForeignKeys(t *testing.T) {
	root := fixtureProject(t)

	report := NewSchemaChecker(fixtureConfig(), root, quietLogger()).Run()

	assert.Len(t, report.Entities, 2)
	assert.Equal(t, 5, report.Columns)
	require.Len(t, report.Check.Resolved, 1)
	assert.Equal(t, "user_profiles", report.Check.Resolved[0].TargetEntity)
	assert.Empty(t, report.Check.TypeMismatches)
	assert.Empty(t, report.Check.UnresolvedTargets)
	assert.False(t, report.HasErrors())
}

func TestSchemaChecker_TypeMismatch(t *testing.T) {
	root := t.TempDir()
	writeProjectFile(t, root, "src/db/schema/runs.ts", `export const validationRuns = pgTable('validation_runs', {
  runId: text('run_id').primaryKey(),
});

export const validationProgress = pgTable('validation_progress', {
  id: uuid('id').primaryKey(),
  runId: uuid('run_id').references(() => validationRuns.runId),
});
`)

	report := NewSchemaChecker(fixtureConfig(), root, quietLogger()).Run()

	require.Len(t, report.Check.TypeMismatches, 1)
	mismatch := report.Check.TypeMismatches[0]
	assert.Equal(t, "uuid", mismatch.SourceType)
	assert.Equal(t, "text", mismatch.TargetType)
	assert.True(t, report.HasErrors())
}

func TestCoverageChecker_UndeclaredTableIsMissing(t *testing.T) {
	root := fixtureProject(t)

	report := NewCoverageChecker(fixtureConfig(), root, quietLogger()).Run()

	require.Len(t, report.MissingInSchema, 1)
	missing := report.MissingInSchema[0]
	assert.Equal(t, "validation_runs", missing.PhysicalName)
	assert.Len(t, missing.References, 2)
	assert.Empty(t, report.UnusedInCode)
	assert.True(t, report.HasErrors())
	assert.Greater(t, report.FilesScanned, 0)
}

func TestCoverageChecker_KnownExternalSuppressesFinding(t *testing.T) {
	root := fixtureProject(t)
	cfg := fixtureConfig().Apply(config.WithKnownExternal([]string{"validation_runs"}))

	report := NewCoverageChecker(cfg, root, quietLogger()).Run()

	assert.Empty(t, report.MissingInSchema)
	assert.False(t, report.HasErrors())
}

func TestTraceChecker_MergesAllSources(t *testing.T) {
	root := fixtureProject(t)

	report := NewTraceChecker(fixtureConfig(), root, quietLogger()).Run()

	require.Len(t, report.Result.Requirements, 2)
	us1 := report.Result.Requirements[0]
	us2 := report.Result.Requirements[1]

	assert.Equal(t, "US-1", us1.ID)
	assert.Equal(t, trace.StatusComplete, us1.Status)
	assert.Equal(t, []string{"src/components/RunForm.tsx"}, us1.Files[trace.FileTypeComponent])
	assert.Equal(t, []string{"src/lib/db.ts"}, us1.Files[trace.FileTypeLibrary])
	assert.Equal(t, []string{"e2e/run.spec.ts"}, us1.Files[trace.FileTypeIntegrationTest])

	assert.Equal(t, "US-2", us2.ID)
	assert.Equal(t, trace.StatusGap, us2.Status)
	assert.Equal(t, "export postponed", us2.Notes)
	assert.Equal(t, []string{"validation_runs"}, us2.DBTables)

	assert.Equal(t, []string{"US-1"}, report.Result.FileIndex["src/lib/db.ts"])
	assert.Empty(t, report.Result.UnknownIDs)

	assert.Equal(t, []string{"src/hooks/useNothing.ts"}, report.Orphans)

	assert.Equal(t, 2, report.Summary.Requirements)
	assert.Equal(t, 1, report.Summary.Complete)
	assert.Equal(t, 1, report.Summary.Gap)
	assert.Equal(t, 0, report.Summary.DroppedBaseline)
	assert.True(t, report.HasErrors(), "an unimplemented requirement is an error-level finding")
}

func TestTraceChecker_RunsAreIdempotent(t *testing.T) {
	root := fixtureProject(t)
	cfg := fixtureConfig()

	first, err := json.Marshal(NewTraceChecker(cfg, root, quietLogger()).Run())
	require.NoError(t, err)
	second, err := json.Marshal(NewTraceChecker(cfg, root, quietLogger()).Run())
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
