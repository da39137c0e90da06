package sections

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a section index is outside the store.
type NotFoundError struct {
	Index int
	Count int
}

func (e *NotFoundError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("section %d not found: document has no sections, valid range is [0, 0)", e.Index)
	}
	return fmt.Sprintf("section %d not found: valid range is [0, %d)", e.Index, e.Count)
}

// ValidationError reports a malformed request argument.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsNotFound checks whether an error is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation checks whether an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
