package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/domain/trace"
)

func TestNewMetadata_RunIDDerivedFromContent(t *testing.T) {
	a := NewMetadata("1.0.0", []byte(`{"x":1}`))
	b := NewMetadata("1.0.0", []byte(`{"x":1}`))
	c := NewMetadata("1.0.0", []byte(`{"x":2}`))

	assert.Equal(t, a.RunID, b.RunID, "identical content yields identical run IDs")
	assert.NotEqual(t, a.RunID, c.RunID)
	assert.Equal(t, "schematrace", a.Tool)
}

func TestMarshalJSONReport_Envelope(t *testing.T) {
	data, err := MarshalJSONReport("1.0.0", map[string]int{"tables": 3})
	require.NoError(t, err)

	var doc struct {
		Metadata Metadata       `json:"metadata"`
		Report   map[string]int `json:"report"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "1.0.0", doc.Metadata.Version)
	assert.NotEmpty(t, doc.Metadata.RunID)
	assert.Equal(t, 3, doc.Report["tables"])
}

func traceReportFixture() checker.TraceReport {
	return checker.TraceReport{
		Result: trace.Result{
			Requirements: []*trace.Entry{
				{ID: "US-1", Title: "Create a run", Status: trace.StatusComplete},
				{ID: "US-2", Title: "Export results", Status: trace.StatusGap, Notes: "export postponed"},
			},
		},
		Orphans: []string{"src/hooks/useNothing.ts"},
		Summary: checker.TraceSummary{
			Requirements: 2,
			Complete:     1,
			Gap:          1,
			Orphans:      1,
			UnknownIDs:   []string{"ZZ-9"},
		},
	}
}

func TestRenderGapReport(t *testing.T) {
	out := renderGapReport(traceReportFixture())

	assert.Contains(t, out, "Requirements: 2, complete: 1, partial: 0, gap: 1.")
	assert.Contains(t, out, "- **US-2** Export results (export postponed)")
	assert.NotContains(t, out, "- **US-1**", "complete requirements are not gaps")
	assert.Contains(t, out, "- ZZ-9")
}

func TestRenderOrphanReport(t *testing.T) {
	out := renderOrphanReport(traceReportFixture())

	assert.Contains(t, out, "- `src/hooks/useNothing.ts`")
	assert.Contains(t, out, "no linked requirement: 1.")
}

func TestWriteTraceArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "trace-out")

	require.NoError(t, WriteTraceArtifacts(dir, "1.0.0", traceReportFixture()))

	for _, name := range []string{TraceabilityFile, GapReportFile, OrphanReportFile} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}

	data, err := os.ReadFile(filepath.Join(dir, TraceabilityFile))
	require.NoError(t, err)
	var doc map[string]any
	assert.NoError(t, json.Unmarshal(data, &doc))
}
