package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidateSystemName validates a system name read from a catalog.
// Names become SVG text and Graphviz node IDs, so control characters are
// rejected outright.
func ValidateSystemName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidCatalog, "system name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidCatalog, "system name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidCatalog, "system name %q contains control characters", name)
		}
	}

	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "path %q names a directory", path)
	}

	return nil
}

// ValidateChoice checks that value is one of the allowed keys and returns an
// error with the given code otherwise. The kind names the setting in the
// message ("format", "type").
func ValidateChoice(code Code, kind, value string, allowed map[string]bool) error {
	if allowed[value] {
		return nil
	}
	return New(code, "invalid %s: %q", kind, value)
}
