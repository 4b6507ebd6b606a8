// Package trace models requirement-to-file traceability: annotations found
// in source, baseline links from planning documents, manual overrides, and
// the three-phase merge that combines them.
package trace

import (
	"path/filepath"
	"strings"
)

// FileType classifies a source file by its path shape, never by content.
type FileType string

// FileType values.
const (
	FileTypeComponent       FileType = "component"
	FileTypeRoute           FileType = "route"
	FileTypePage            FileType = "page"
	FileTypeHook            FileType = "hook"
	FileTypeLibrary         FileType = "library"
	FileTypeIntegrationTest FileType = "integration-test"
	FileTypeUnitTest        FileType = "unit-test"
	FileTypeOther           FileType = "other"
)

// CodeFileTypes are the file types that count as implementation links when
// deriving a requirement's status.
var CodeFileTypes = []FileType{
	FileTypeComponent,
	FileTypeRoute,
	FileTypePage,
	FileTypeHook,
	FileTypeLibrary,
}

// TestFileTypes are the file types that count as test links.
var TestFileTypes = []FileType{
	FileTypeIntegrationTest,
	FileTypeUnitTest,
}

// FileTypeForPath infers the file type from the path alone. Test suffixes
// take precedence over directory placement so a spec file inside a hooks
// directory still classifies as a test.
func FileTypeForPath(path string) FileType {
	normalized := filepath.ToSlash(path)
	base := strings.ToLower(filepath.Base(normalized))
	// Leading slash so a root-level e2e/ directory matches too.
	padded := "/" + normalized

	switch {
	case strings.Contains(base, ".spec."), strings.Contains(padded, "/e2e/"), strings.Contains(padded, "/integration/"):
		return FileTypeIntegrationTest
	case strings.Contains(base, ".test."), strings.Contains(normalized, "/__tests__/"):
		return FileTypeUnitTest
	}

	for _, part := range strings.Split(normalized, "/") {
		switch strings.ToLower(part) {
		case "components":
			return FileTypeComponent
		case "hooks":
			return FileTypeHook
		case "lib", "libs", "utils":
			return FileTypeLibrary
		case "api":
			return FileTypeRoute
		case "pages":
			return FileTypePage
		case "app":
			// Next-style app router: page files are pages, route handlers
			// live under an api segment handled above.
			switch base {
			case "page.tsx", "page.ts", "page.jsx":
				return FileTypePage
			case "route.ts", "route.tsx":
				return FileTypeRoute
			}
		}
	}

	// Camel-cased use prefix only, so users.ts is not a hook.
	raw := filepath.Base(normalized)
	if strings.HasPrefix(raw, "use") && len(raw) > 3 && raw[3] >= 'A' && raw[3] <= 'Z' &&
		(strings.HasSuffix(base, ".ts") || strings.HasSuffix(base, ".tsx")) {
		return FileTypeHook
	}
	return FileTypeOther
}
