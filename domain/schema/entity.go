// Package schema holds the data model produced by the schema-definition
// extractors: declared tables, their columns, and the foreign-key relations
// between them.
package schema

// Entity is a single table declaration found in a schema-definition file.
// VariableName is the in-source binding, PhysicalName the storage-level
// identifier passed to the table factory.
type Entity struct {
	VariableName string `json:"variable_name"`
	PhysicalName string `json:"physical_name"`
	SourceFile   string `json:"source_file"`
}

// Column is a single column declaration inside a table block. Attribution to
// an entity is decided by block nesting depth at extraction time, never by
// name matching.
type Column struct {
	EntityPhysicalName string `json:"entity"`
	PropertyName       string `json:"property"`
	PhysicalColumnName string `json:"column"`
	DeclaredType       string `json:"declared_type"`
	SourceFile         string `json:"source_file"`
	LineNumber         int    `json:"line"`
}

// Relation is a foreign-key declaration. TargetType stays empty until the
// resolver looks the target column up through the symbol table; a relation
// that is still empty after resolution is unresolved.
type Relation struct {
	SourceEntity string `json:"source_entity"`
	SourceColumn string `json:"source_column"`
	SourceType   string `json:"source_type"`
	TargetVar    string `json:"target_variable"`
	TargetColumn string `json:"target_column"`
	TargetEntity string `json:"target_entity,omitempty"`
	TargetType   string `json:"target_type,omitempty"`
	SourceFile   string `json:"source_file"`
	LineNumber   int    `json:"line"`
}

// Resolved reports whether the relation's target was found.
func (r Relation) Resolved() bool {
	return r.TargetType != ""
}

// TypesMatch compares both sides of a resolved relation using normalized
// type equivalence classes, so spelling variants of the same logical type
// never count as a mismatch.
func (r Relation) TypesMatch() bool {
	return r.Resolved() && NormalizeType(r.SourceType) == NormalizeType(r.TargetType)
}

// ConsistencyReport partitions every extracted relation into exactly one of
// resolved-with-match, resolved-with-mismatch, or unresolved.
type ConsistencyReport struct {
	Resolved          []Relation `json:"resolved"`
	TypeMismatches    []Relation `json:"type_mismatches"`
	UnresolvedTargets []Relation `json:"unresolved_targets"`
}

// HasErrors reports whether the consistency check produced error-level
// findings. Type mismatches are errors; unresolved targets are warnings.
func (r ConsistencyReport) HasErrors() bool {
	return len(r.TypeMismatches) > 0
}

// Total returns the number of relations examined.
func (r ConsistencyReport) Total() int {
	return len(r.Resolved) + len(r.TypeMismatches) + len(r.UnresolvedTargets)
}
