package nexus

import (
	"errors"
	"fmt"
)

// ValidationError is the single error kind produced by processors and stages.
// It signals a malformed input (wrong top-level type, no usable items) or a
// missing precondition flag between pipeline stages.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
