package trace

// Status is a requirement's implementation classification.
type Status string

// Status values.
const (
	StatusComplete Status = "complete"
	StatusPartial  Status = "partial"
	StatusGap      Status = "gap"
)

// Link associates a requirement with one file of a given type. Baselines and
// annotations both reduce to links before merging.
type Link struct {
	RequirementID string
	FilePath      string
	FileType      FileType
}

// Entry is the merged state for one requirement. The per-type file lists are
// owned by the merge pipeline: baseline fills them first, annotations
// supersede per file type, overrides never touch them.
type Entry struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Files            map[FileType][]string `json:"files"`
	DBTables         []string            `json:"db_tables,omitempty"`
	Status           Status              `json:"implementation_status"`
	Notes            string              `json:"notes,omitempty"`
	statusOverridden bool
}

// Override is the validated form of one requirement's manual override.
// Only metadata fields are representable; file-association lists are
// rejected at parse time before an Override is ever constructed.
type Override struct {
	RequirementID        string
	DBTables             []string
	Notes                string
	ImplementationStatus Status
	ExtraAnnotationGlobs []string
}

// hasAny reports whether the entry links at least one file of any of the
// given types.
func (e *Entry) hasAny(types []FileType) bool {
	for _, t := range types {
		if len(e.Files[t]) > 0 {
			return true
		}
	}
	return false
}

// deriveStatus classifies the entry unless an override already set its
// status explicitly.
func (e *Entry) deriveStatus() {
	if e.statusOverridden {
		return
	}
	code := e.hasAny(CodeFileTypes)
	tests := e.hasAny(TestFileTypes)
	switch {
	case code && tests:
		e.Status = StatusComplete
	case code || tests:
		e.Status = StatusPartial
	default:
		e.Status = StatusGap
	}
}
