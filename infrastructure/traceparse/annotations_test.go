package traceparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/domain/trace"
)

func TestExtractAnnotations_SingleTag(t *testing.T) {
	content := "// @story US-12\nexport function RunForm() {}\n"

	annotations := extractAnnotations(content, "src/components/RunForm.tsx")

	require.Len(t, annotations, 1)
	assert.Equal(t, []string{"US-12"}, annotations[0].TaggedIDs)
	assert.Equal(t, 1, annotations[0].Line)
	assert.Equal(t, trace.FileTypeComponent, annotations[0].FileType)
}

func TestExtractAnnotations_CommaSeparatedList(t *testing.T) {
	annotations := extractAnnotations("/* @story: US-1, US-23, QA-4 */", "src/lib/db.ts")

	require.Len(t, annotations, 1)
	assert.Equal(t, []string{"US-1", "US-23", "QA-4"}, annotations[0].TaggedIDs)
}

func TestExtractAnnotations_MalformedIDsDropped(t *testing.T) {
	annotations := extractAnnotations("// @story US-1, us-2, TOOLONGX-3", "a.ts")

	require.Len(t, annotations, 1)
	assert.Equal(t, []string{"US-1"}, annotations[0].TaggedIDs)
}

func TestExtractAnnotations_NoTagNoAnnotation(t *testing.T) {
	assert.Empty(t, extractAnnotations("// story: the user wants US dollars\n", "a.ts"))
}

func TestExtractAnnotations_MultipleTagsKeepLines(t *testing.T) {
	content := "// @story US-1\n\n// @story US-2\n"

	annotations := extractAnnotations(content, "a.ts")

	require.Len(t, annotations, 2)
	assert.Equal(t, 1, annotations[0].Line)
	assert.Equal(t, 3, annotations[1].Line)
}
