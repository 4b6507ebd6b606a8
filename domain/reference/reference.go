// Package reference models table references found in application code and
// the coverage analysis between those references and the declared schema.
package reference

// CodeReference records a single call-site that names a physical table.
// The link back to a schema entity is by physical name only.
type CodeReference struct {
	PhysicalName string `json:"table"`
	FilePath     string `json:"file"`
	LineNumber   int    `json:"line"`
	ContextLine  string `json:"context"`
}

// GroupByTable buckets references by physical table name.
func GroupByTable(refs []CodeReference) map[string][]CodeReference {
	grouped := make(map[string][]CodeReference)
	for _, ref := range refs {
		grouped[ref.PhysicalName] = append(grouped[ref.PhysicalName], ref)
	}
	return grouped
}
