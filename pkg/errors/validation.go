package errors

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidatePath validates a local input file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
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

// sampleSlugRegex matches built-in sample slugs (e.g. "team-collaboration").
var sampleSlugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSampleName validates a sample slug taken from a URL or CLI argument.
func ValidateSampleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "sample name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "sample name too long (max 64 characters)")
	}
	if !sampleSlugRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid sample name: %q", name)
	}
	return nil
}

// ValidateID validates a stored document identifier.
// Identifiers are UUIDs in canonical hyphenated form.
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		return New(ErrCodeInvalidInput, "invalid id: %q", id)
	}
	return nil
}
