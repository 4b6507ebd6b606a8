package trace

// Annotation is one requirement-tag comment found in a source file. A single
// comment may tag several requirement IDs; each physical occurrence yields
// one Annotation.
type Annotation struct {
	File      string   `json:"file"`
	Line      int      `json:"line"`
	TaggedIDs []string `json:"tagged_ids"`
	FileType  FileType `json:"file_type"`
}

// Links expands the annotation into one Link per tagged requirement.
func (a Annotation) Links() []Link {
	links := make([]Link, 0, len(a.TaggedIDs))
	for _, id := range a.TaggedIDs {
		links = append(links, Link{
			RequirementID: id,
			FilePath:      a.File,
			FileType:      a.FileType,
		})
	}
	return links
}
