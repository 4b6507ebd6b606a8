package schema

// SymbolTable resolves relationship targets across files. Both maps are
// built once per run from the full set of extracted entities and columns,
// then passed into the resolver as immutable inputs.
type SymbolTable struct {
	byVariable map[string]Entity
	byColumn   map[ColumnKey]Column
}

// ColumnKey addresses a column by its entity's physical name and the
// in-source property name.
type ColumnKey struct {
	Entity   string
	Property string
}

// NewSymbolTable builds a symbol table from extracted entities and columns.
// Later duplicates of the same variable or column key win, matching the
// re-scan order of the extractors.
func NewSymbolTable(entities []Entity, columns []Column) SymbolTable {
	byVar := make(map[string]Entity, len(entities))
	for _, e := range entities {
		byVar[e.VariableName] = e
	}
	byCol := make(map[ColumnKey]Column, len(columns))
	for _, c := range columns {
		byCol[ColumnKey{Entity: c.EntityPhysicalName, Property: c.PropertyName}] = c
	}
	return SymbolTable{byVariable: byVar, byColumn: byCol}
}

// EntityForVariable resolves an in-source binding name to its entity.
func (t SymbolTable) EntityForVariable(name string) (Entity, bool) {
	e, ok := t.byVariable[name]
	return e, ok
}

// ColumnFor resolves a column by entity physical name and property name.
func (t SymbolTable) ColumnFor(entity, property string) (Column, bool) {
	c, ok := t.byColumn[ColumnKey{Entity: entity, Property: property}]
	return c, ok
}

// Resolve fills in the target side of each relation through the symbol
// table. Relations whose target variable, entity, or property cannot be
// found stay unresolved. The input slice is not mutated.
func (t SymbolTable) Resolve(relations []Relation) ConsistencyReport {
	var report ConsistencyReport
	for _, rel := range relations {
		entity, ok := t.EntityForVariable(rel.TargetVar)
		if !ok {
			report.UnresolvedTargets = append(report.UnresolvedTargets, rel)
			continue
		}
		rel.TargetEntity = entity.PhysicalName

		col, ok := t.ColumnFor(entity.PhysicalName, rel.TargetColumn)
		if !ok {
			report.UnresolvedTargets = append(report.UnresolvedTargets, rel)
			continue
		}
		rel.TargetType = col.DeclaredType

		if rel.TypesMatch() {
			report.Resolved = append(report.Resolved, rel)
		} else {
			report.TypeMismatches = append(report.TypeMismatches, rel)
		}
	}
	return report
}
