package trace

import "sort"

// Matrix accumulates traceability state for one analysis run. Sources must
// be applied in precedence order: baseline links first, annotations second,
// overrides last. Finalize derives statuses and the reverse index from the
// merged state, so the forward and reverse views can never disagree.
type Matrix struct {
	entries    map[string]*Entry
	annotated  map[string]map[FileType]bool
	unknownIDs map[string]bool
}

// Result is the finalized traceability state.
type Result struct {
	Requirements []*Entry            `json:"requirements"`
	FileIndex    map[string][]string `json:"file_index"`
	UnknownIDs   []string            `json:"unknown_ids,omitempty"`
}

// NewMatrix creates a matrix with one entry per defined requirement.
// definitions maps requirement ID to its title; IDs outside this set are
// unknown and dropped by the apply phases.
func NewMatrix(definitions map[string]string) *Matrix {
	entries := make(map[string]*Entry, len(definitions))
	for id, title := range definitions {
		entries[id] = &Entry{
			ID:    id,
			Title: title,
			Files: make(map[FileType][]string),
		}
	}
	return &Matrix{
		entries:    entries,
		annotated:  make(map[string]map[FileType]bool),
		unknownIDs: make(map[string]bool),
	}
}

// ApplyBaseline records baseline-sourced links. Baseline is the lowest
// precedence source: anything it contributes may later be replaced wholesale
// by annotations of the same file type.
func (m *Matrix) ApplyBaseline(links []Link) {
	for _, link := range links {
		entry, ok := m.entries[link.RequirementID]
		if !ok {
			m.unknownIDs[link.RequirementID] = true
			continue
		}
		entry.Files[link.FileType] = appendUnique(entry.Files[link.FileType], link.FilePath)
	}
}

// ApplyAnnotations records annotation-sourced links. Annotations are
// authoritative: the first annotation seen for a (requirement, file type)
// pair clears whatever baseline put there, and subsequent annotations of the
// same pair accumulate.
func (m *Matrix) ApplyAnnotations(annotations []Annotation) {
	for _, a := range annotations {
		for _, link := range a.Links() {
			entry, ok := m.entries[link.RequirementID]
			if !ok {
				m.unknownIDs[link.RequirementID] = true
				continue
			}
			touched := m.annotated[link.RequirementID]
			if touched == nil {
				touched = make(map[FileType]bool)
				m.annotated[link.RequirementID] = touched
			}
			if !touched[link.FileType] {
				entry.Files[link.FileType] = nil
				touched[link.FileType] = true
			}
			entry.Files[link.FileType] = appendUnique(entry.Files[link.FileType], link.FilePath)
		}
	}
}

// ApplyOverride applies one requirement's manual override. Overrides carry
// the highest precedence but are restricted to metadata fields; they never
// touch file-association lists.
func (m *Matrix) ApplyOverride(o Override) {
	entry, ok := m.entries[o.RequirementID]
	if !ok {
		m.unknownIDs[o.RequirementID] = true
		return
	}
	if o.DBTables != nil {
		entry.DBTables = append([]string(nil), o.DBTables...)
	}
	if o.Notes != "" {
		entry.Notes = o.Notes
	}
	if o.ImplementationStatus != "" {
		entry.Status = o.ImplementationStatus
		entry.statusOverridden = true
	}
}

// UnknownIDs returns every requirement ID referenced by a source but absent
// from the definitions, sorted.
func (m *Matrix) UnknownIDs() []string {
	ids := make([]string, 0, len(m.unknownIDs))
	for id := range m.unknownIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Finalize derives each entry's status, sorts all lists for deterministic
// output, and builds the reverse file index from the merged forward state.
func (m *Matrix) Finalize() Result {
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fileIndex := make(map[string][]string)
	requirements := make([]*Entry, 0, len(ids))
	for _, id := range ids {
		entry := m.entries[id]
		for _, files := range entry.Files {
			sort.Strings(files)
		}
		sort.Strings(entry.DBTables)
		entry.deriveStatus()
		requirements = append(requirements, entry)

		for _, files := range entry.Files {
			for _, f := range files {
				fileIndex[f] = appendUnique(fileIndex[f], id)
			}
		}
	}
	for _, reqs := range fileIndex {
		sort.Strings(reqs)
	}

	return Result{
		Requirements: requirements,
		FileIndex:    fileIndex,
		UnknownIDs:   m.UnknownIDs(),
	}
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
