package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds element names and registry keys.
const maxNameLength = 256

// ValidateName validates an element name read from an external model.
// Names end up verbatim in the generated document, so anything that would
// break a line or a block of the notation is rejected:
//   - No empty or blank names
//   - No control characters (including newlines)
//   - No braces or square brackets
//   - Maximum length of 256 characters
//
// Names built in code are not validated; see [ValidateKey] for registry keys.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidModel, "element name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidModel, "element name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidModel, "element name %q contains control characters", name)
		}
	}

	if strings.ContainsAny(name, "{}[]") {
		return New(ErrCodeInvalidModel, "element name %q contains reserved characters", name)
	}

	return nil
}

// ValidateKind validates an element kind tag. Kinds are a single word of the
// target notation (package, class, rectangle, role_party, ...).
func ValidateKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidModel, "element kind cannot be empty")
	}
	for _, r := range kind {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune("{}[]", r) {
			return New(ErrCodeInvalidModel, "invalid element kind: %q", kind)
		}
	}
	return nil
}

// ValidateColor validates an optional color. Empty means unset.
// Colors are written as "#name" or "#RRGGBB".
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !strings.HasPrefix(color, "#") || len(color) < 2 {
		return New(ErrCodeInvalidModel, "color must start with '#': %q", color)
	}
	for _, r := range color[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return New(ErrCodeInvalidModel, "invalid color: %q", color)
		}
	}
	return nil
}

// ValidateKey validates a registry key.
func ValidateKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidInput, "registry key cannot be empty")
	}
	if len(key) > maxNameLength {
		return New(ErrCodeInvalidInput, "registry key too long (max %d characters)", maxNameLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "registry key %q contains whitespace or control characters", key)
		}
	}
	return nil
}

// ValidatePath validates an output file path.
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
