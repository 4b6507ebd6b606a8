package traceparse

import (
	"fmt"
	"log/slog"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/schematrace/schematrace/domain/trace"
)

// allowedOverrideFields are the metadata fields an override may set.
var allowedOverrideFields = map[string]bool{
	"db_tables":              true,
	"notes":                  true,
	"implementation_status":  true,
	"extra_annotation_globs": true,
}

// forbiddenOverrideFields are the annotation-authoritative file lists an
// override must never touch. One forbidden field rejects the whole bundle
// for that requirement.
var forbiddenOverrideFields = map[string]bool{
	"components":        true,
	"pages":             true,
	"routes":            true,
	"hooks":             true,
	"libraries":         true,
	"integration_tests": true,
	"unit_tests":        true,
}

type overrideDoc struct {
	DBTables             []string `yaml:"db_tables"`
	Notes                string   `yaml:"notes"`
	ImplementationStatus string   `yaml:"implementation_status"`
	ExtraAnnotationGlobs []string `yaml:"extra_annotation_globs"`
}

// ParseOverrides decodes the override document. Unparseable YAML is an
// error and the whole document contributes nothing. Per requirement:
// forbidden fields reject that requirement's bundle entirely (the allowed
// fields in it must not partially apply); unknown fields only warn.
func ParseOverrides(data []byte, logger *slog.Logger) ([]trace.Override, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var raw map[string]map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse override document: %w", err)
	}

	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var overrides []trace.Override
	for _, id := range ids {
		fields := raw[id]

		var forbidden []string
		for key := range fields {
			switch {
			case forbiddenOverrideFields[key]:
				forbidden = append(forbidden, key)
			case !allowedOverrideFields[key]:
				logger.Warn("unknown override field, ignoring",
					slog.String("requirement", id),
					slog.String("field", key),
				)
			}
		}
		if len(forbidden) > 0 {
			sort.Strings(forbidden)
			logger.Error("override contains forbidden file-association fields, rejecting entry",
				slog.String("requirement", id),
				slog.Any("fields", forbidden),
			)
			continue
		}

		var doc overrideDoc
		if err := remarshal(fields, &doc); err != nil {
			logger.Error("malformed override entry, rejecting",
				slog.String("requirement", id),
				slog.Any("error", err),
			)
			continue
		}
		overrides = append(overrides, trace.Override{
			RequirementID:        id,
			DBTables:             doc.DBTables,
			Notes:                doc.Notes,
			ImplementationStatus: trace.Status(doc.ImplementationStatus),
			ExtraAnnotationGlobs: doc.ExtraAnnotationGlobs,
		})
	}
	return overrides, nil
}

// remarshal decodes a map of raw YAML nodes into a typed struct.
func remarshal(fields map[string]yaml.Node, out any) error {
	encoded, err := yaml.Marshal(fields)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(encoded, out)
}
