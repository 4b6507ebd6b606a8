package traceparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/domain/trace"
)

const testMatrix = `# Test Matrix

| Story | Test File | Status |
|-------|-----------|--------|
| US-1 | ` + "`e2e/run.spec.ts`" + ` | pass |
| US-2, US-3 | e2e/export.spec.ts | pass |
| US-4 | TBD | - |
`

func TestParseTestMatrix(t *testing.T) {
	links := ParseTestMatrix(testMatrix)

	require.Len(t, links, 3)
	assert.Equal(t, trace.Link{
		RequirementID: "US-1",
		FilePath:      "e2e/run.spec.ts",
		FileType:      trace.FileTypeIntegrationTest,
	}, links[0])
	assert.Equal(t, "US-2", links[1].RequirementID)
	assert.Equal(t, "US-3", links[2].RequirementID)
	assert.Equal(t, links[1].FilePath, links[2].FilePath)
}

func TestParseTestMatrix_NoHeaderNoLinks(t *testing.T) {
	assert.Empty(t, ParseTestMatrix("| a | b |\n|---|---|\n| US-1 | e2e/x.spec.ts |\n"))
}

func TestParseFeatureInventory(t *testing.T) {
	content := `# Feature Inventory

## Validation Runs

User Stories: US-1, US-2

- components/RunForm.tsx renders the form
- src/hooks/useRuns.ts polls for progress

## Orphan Feature

No stories listed here.
- components/Ignored.tsx
`

	links := ParseFeatureInventory(content)

	require.Len(t, links, 4)
	assert.Equal(t, "components/RunForm.tsx", links[0].FilePath)
	assert.Equal(t, trace.FileTypeComponent, links[0].FileType)
	assert.ElementsMatch(t,
		[]string{"US-1", "US-2"},
		[]string{links[0].RequirementID, links[1].RequirementID},
	)
	for _, link := range links {
		assert.NotEqual(t, "components/Ignored.tsx", link.FilePath,
			"sections without a story list contribute nothing")
	}
}

func TestParseFeatureInventory_SectionBoundaryResetsStories(t *testing.T) {
	content := "## A\nUser Stories: US-1\n## B\ncomponents/Late.tsx\n"

	assert.Empty(t, ParseFeatureInventory(content))
}

func TestDropDangling(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "e2e"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "e2e", "run.spec.ts"), []byte(""), 0o644))

	links := []trace.Link{
		{RequirementID: "US-1", FilePath: "e2e/run.spec.ts", FileType: trace.FileTypeIntegrationTest},
		{RequirementID: "US-2", FilePath: "e2e/gone.spec.ts", FileType: trace.FileTypeIntegrationTest},
	}

	kept := DropDangling(links, root, nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "US-1", kept[0].RequirementID)
}
