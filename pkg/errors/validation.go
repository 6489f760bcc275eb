package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a document or options file path given on the
// command line. It rejects empty paths, control characters and null bytes.
// Absolute and relative paths are both accepted.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateTypeName validates a node type name used in anchored or fold
// type lists. Type names are matched exactly against the document, so
// surrounding whitespace is almost always a configuration mistake.
func ValidateTypeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "node type name cannot be empty")
	}
	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidConfig, "node type name has surrounding whitespace: %q", name)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "node type name contains control characters: %q", name)
		}
	}
	return nil
}

// ValidateTypeNames applies [ValidateTypeName] to every entry and rejects
// duplicates.
func ValidateTypeNames(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if err := ValidateTypeName(n); err != nil {
			return err
		}
		if seen[n] {
			return New(ErrCodeInvalidConfig, "duplicate node type name: %q", n)
		}
		seen[n] = true
	}
	return nil
}
