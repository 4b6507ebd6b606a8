package schemaparse

import (
	"strings"

	"github.com/schematrace/schematrace/domain/schema"
)

// ExtractEntities returns one entity per table declaration header in the
// file, regardless of nesting elsewhere. Only the header line is parsed;
// block bodies belong to the column extractor.
func ExtractEntities(content, sourceFile string) []schema.Entity {
	var entities []schema.Entity
	for _, line := range strings.Split(content, "\n") {
		header, ok := matchTableHeader(line)
		if !ok {
			continue
		}
		entities = append(entities, schema.Entity{
			VariableName: header.variable,
			PhysicalName: header.physical,
			SourceFile:   sourceFile,
		})
	}
	return entities
}
