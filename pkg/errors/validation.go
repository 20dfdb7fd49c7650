package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// streetNameRegex matches names usable as store keys and file stems.
var streetNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateStreetName validates a street name for use as a storage key.
// It rejects names that could be used for path traversal or key injection.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
func ValidateStreetName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "street name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "street name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "street name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidName, "street name contains invalid characters: %q", "..")
	}

	if !streetNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid street name: %q", name)
	}

	return nil
}

// ValidatePath validates a relative file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// clockRegex matches a 24-hour "hh:mm" time of day.
var clockRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidateClock validates a business-hours time in "hh:mm" form.
func ValidateClock(s string) error {
	if !clockRegex.MatchString(s) {
		return New(ErrCodeInvalidBuilding, "invalid time %q (want hh:mm)", s)
	}
	return nil
}
