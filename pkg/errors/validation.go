package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidateFinite rejects NaN and infinite values.
func ValidateFinite(what string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidSize, "%s must be a finite number, got %v", what, v)
	}
	return nil
}

// ValidateSize validates an item size. Both dimensions must be finite and
// non-negative, and either both zero (match the viewport) or both positive.
func ValidateSize(what string, width, height float64) error {
	for _, v := range []float64{width, height} {
		if err := ValidateFinite(what, v); err != nil {
			return err
		}
		if v < 0 {
			return New(ErrCodeInvalidSize, "%s cannot be negative: %gx%g", what, width, height)
		}
	}
	if (width == 0) != (height == 0) {
		return New(ErrCodeInvalidSize, "%s must be zero or have both dimensions set: %gx%g", what, width, height)
	}
	return nil
}

// ValidateViewport validates a viewport size. Both dimensions must be
// finite and positive.
func ValidateViewport(width, height float64) error {
	if err := ValidateSize("viewport", width, height); err != nil {
		return err
	}
	if width == 0 {
		return New(ErrCodeInvalidSize, "viewport cannot be empty")
	}
	return nil
}

// ValidateIndex checks that index addresses one of count items. An empty
// data source accepts only index 0.
func ValidateIndex(index, count int) error {
	if count < 0 {
		return New(ErrCodeInvalidIndex, "item count cannot be negative: %d", count)
	}
	if count == 0 && index == 0 {
		return nil
	}
	if index < 0 || index >= count {
		return New(ErrCodeInvalidIndex, "index %d out of range [0, %d)", index, count)
	}
	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidatePath validates an output path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Cannot name a directory (trailing separator)
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %q", path)
	}

	return nil
}
