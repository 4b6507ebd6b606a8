package reference

import (
	"sort"

	"github.com/schematrace/schematrace/domain/schema"
)

// MissingTable is a physical name referenced in code but never declared in
// the schema layer, together with every call-site that references it.
type MissingTable struct {
	PhysicalName string          `json:"table"`
	References   []CodeReference `json:"references"`
}

// UnusedTable is a declared entity that no application code references.
type UnusedTable struct {
	PhysicalName string `json:"table"`
	SourceFile   string `json:"source_file"`
}

// CoverageReport holds both directions of the set difference between
// referenced and declared tables. The two lists are disjoint by
// construction and recomputed wholesale each run.
type CoverageReport struct {
	MissingInSchema []MissingTable `json:"missing_in_schema"`
	UnusedInCode    []UnusedTable  `json:"unused_in_code"`
	TablesReferenced int           `json:"tables_referenced"`
	TablesDeclared   int           `json:"tables_declared"`
}

// HasErrors reports whether the coverage check produced error-level
// findings. Missing schema definitions are errors; unused declarations are
// warnings.
func (r CoverageReport) HasErrors() bool {
	return len(r.MissingInSchema) > 0
}

// Coverage computes both set differences. Names on the knownExternal
// allow-list (entities intentionally not modeled, e.g. platform-managed
// tables) are subtracted from the reference set before either difference is
// taken. Output is sorted by physical name for deterministic reports.
func Coverage(grouped map[string][]CodeReference, entities []schema.Entity, knownExternal []string) CoverageReport {
	external := make(map[string]bool, len(knownExternal))
	for _, name := range knownExternal {
		external[name] = true
	}

	declared := make(map[string]schema.Entity, len(entities))
	for _, e := range entities {
		declared[e.PhysicalName] = e
	}

	report := CoverageReport{
		TablesReferenced: len(grouped),
		TablesDeclared:   len(entities),
	}

	for name, refs := range grouped {
		if external[name] {
			continue
		}
		if _, ok := declared[name]; !ok {
			report.MissingInSchema = append(report.MissingInSchema, MissingTable{
				PhysicalName: name,
				References:   refs,
			})
		}
	}
	sort.Slice(report.MissingInSchema, func(i, j int) bool {
		return report.MissingInSchema[i].PhysicalName < report.MissingInSchema[j].PhysicalName
	})

	for _, e := range entities {
		if _, ok := grouped[e.PhysicalName]; !ok {
			report.UnusedInCode = append(report.UnusedInCode, UnusedTable{
				PhysicalName: e.PhysicalName,
				SourceFile:   e.SourceFile,
			})
		}
	}
	sort.Slice(report.UnusedInCode, func(i, j int) bool {
		return report.UnusedInCode[i].PhysicalName < report.UnusedInCode[j].PhysicalName
	})

	return report
}
