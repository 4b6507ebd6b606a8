package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schematrace/schematrace/domain/schema"
)

func refs(table string, n int) []CodeReference {
	out := make([]CodeReference, n)
	for i := range out {
		out[i] = CodeReference{PhysicalName: table, FilePath: "src/a.ts", LineNumber: i + 1}
	}
	return out
}

func TestCoverage_PartitionIsDisjointAndExhaustive(t *testing.T) {
	grouped := map[string][]CodeReference{
		"user_profiles":   refs("user_profiles", 1),
		"validation_runs": refs("validation_runs", 2),
	}
	entities := []schema.Entity{
		{PhysicalName: "user_profiles", SourceFile: "users.ts"},
		{PhysicalName: "audit_log", SourceFile: "audit.ts"},
	}

	report := Coverage(grouped, entities, nil)

	// user_profiles: in both; validation_runs: missing; audit_log: unused.
	require.Len(t, report.MissingInSchema, 1)
	assert.Equal(t, "validation_runs", report.MissingInSchema[0].PhysicalName)
	require.Len(t, report.UnusedInCode, 1)
	assert.Equal(t, "audit_log", report.UnusedInCode[0].PhysicalName)

	missing := map[string]bool{}
	for _, m := range report.MissingInSchema {
		missing[m.PhysicalName] = true
	}
	for _, u := range report.UnusedInCode {
		assert.False(t, missing[u.PhysicalName], "buckets must be disjoint")
	}
}

func TestCoverage_KnownExternalSubtracted(t *testing.T) {
	grouped := map[string][]CodeReference{
		"auth_users": refs("auth_users", 3),
	}

	report := Coverage(grouped, nil, []string{"auth_users"})

	assert.Empty(t, report.MissingInSchema)
}

func TestCoverage_MissingKeepsAllReferences(t *testing.T) {
	grouped := map[string][]CodeReference{
		"validation_runs": refs("validation_runs", 2),
	}

	report := Coverage(grouped, nil, nil)

	require.Len(t, report.MissingInSchema, 1)
	assert.Len(t, report.MissingInSchema[0].References, 2)
}

func TestCoverage_SortedByPhysicalName(t *testing.T) {
	grouped := map[string][]CodeReference{
		"zebra": refs("zebra", 1),
		"alpha": refs("alpha", 1),
	}
	entities := []schema.Entity{
		{PhysicalName: "zulu"},
		{PhysicalName: "amber"},
	}

	report := Coverage(grouped, entities, nil)

	require.Len(t, report.MissingInSchema, 2)
	assert.Equal(t, "alpha", report.MissingInSchema[0].PhysicalName)
	require.Len(t, report.UnusedInCode, 2)
	assert.Equal(t, "amber", report.UnusedInCode[0].PhysicalName)
}

func TestGroupByTable(t *testing.T) {
	grouped := GroupByTable([]CodeReference{
		{PhysicalName: "a", LineNumber: 1},
		{PhysicalName: "a", LineNumber: 2},
		{PhysicalName: "b", LineNumber: 3},
	})

	assert.Len(t, grouped["a"], 2)
	assert.Len(t, grouped["b"], 1)
}
