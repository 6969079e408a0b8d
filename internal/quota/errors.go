package quota

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a tier, organization, or user id does not
// resolve to a record.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a malformed or out-of-range field value.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// SourceUnavailableError reports that an authoritative usage source could
// not be read during recalculation. The previous snapshot stays untouched.
type SourceUnavailableError struct {
	Source string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("usage source %q unavailable: %v", e.Source, e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}
