// Package report renders checker results as JSON documents, human-readable
// terminal tables, and generated markdown artifacts. Every renderer is a
// deterministic function of the in-memory report structure.
package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// reportNamespace scopes content-derived run IDs to this tool.
var reportNamespace = uuid.MustParse("9c0b5f76-44dc-4a3b-9a3f-2f6f5b1c8e21")

// Metadata describes one generated report.
type Metadata struct {
	GeneratedAt string `json:"generated_at"`
	RunID       string `json:"run_id"`
	Tool        string `json:"tool"`
	Version     string `json:"version"`
}

// NewMetadata builds generation metadata. The run ID is a content-derived
// UUID so identical inputs produce identical documents apart from the
// timestamp.
func NewMetadata(version string, content []byte) Metadata {
	return Metadata{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       uuid.NewSHA1(reportNamespace, content).String(),
		Tool:        "schematrace",
		Version:     version,
	}
}

// Document is the JSON envelope for any checker report.
type Document struct {
	Metadata Metadata `json:"metadata"`
	Report   any      `json:"report"`
}

// MarshalJSONReport renders a checker report inside the standard envelope.
func MarshalJSONReport(version string, body any) ([]byte, error) {
	content, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	doc := Document{
		Metadata: NewMetadata(version, content),
		Report:   body,
	}
	return json.MarshalIndent(doc, "", "  ")
}
