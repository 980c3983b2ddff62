package errors

import (
	"math"
	"strings"
	"unicode"
)

// maxLabelLength bounds category and subcategory labels.
const maxLabelLength = 256

// ValidateLabel validates a category or subcategory label.
//
// The validation rules are intentionally conservative:
//   - No control characters (they break SVG and terminal output)
//   - Maximum length of 256 characters
//
// Empty labels are accepted here; callers decide how to name them.
func ValidateLabel(label string) error {
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidRecord, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRecord, "label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateWeight rejects negative, NaN and infinite values.
// Zero is valid.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWeight, "weight must be finite, got %v", w)
	}
	if w < 0 {
		return New(ErrCodeInvalidWeight, "weight must not be negative, got %v", w)
	}
	return nil
}

// ValidateOutputPath validates a user supplied output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory")
	}

	return nil
}
