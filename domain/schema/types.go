package schema

import "strings"

// typeClasses maps declared type tokens to their broad equivalence class.
// Integer variants unify, text and varchar unify, single- and
// double-precision floats stay distinct.
var typeClasses = map[string]string{
	"uuid":            "UUID",
	"text":            "TEXT",
	"varchar":         "TEXT",
	"char":            "TEXT",
	"integer":         "INTEGER",
	"int":             "INTEGER",
	"smallint":        "INTEGER",
	"bigint":          "INTEGER",
	"serial":          "INTEGER",
	"bigserial":       "INTEGER",
	"smallserial":     "INTEGER",
	"real":            "REAL",
	"doubleprecision": "DOUBLE",
	"double":          "DOUBLE",
	"numeric":         "NUMERIC",
	"decimal":         "NUMERIC",
	"boolean":         "BOOLEAN",
	"bool":            "BOOLEAN",
	"timestamp":       "TIMESTAMP",
	"timestamptz":     "TIMESTAMP",
	"date":            "DATE",
	"time":            "TIME",
	"json":            "JSON",
	"jsonb":           "JSON",
}

// NormalizeType maps a declared type token to its equivalence class.
// Unrecognized tokens default to their uppercased base form so two columns
// sharing an unknown type still compare equal.
func NormalizeType(token string) string {
	base := strings.ToLower(strings.TrimSpace(token))
	if class, ok := typeClasses[base]; ok {
		return class
	}
	return strings.ToUpper(base)
}
