package entity

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrUnknownCustomer = errors.New("customer does not exist")
)

// FieldError describes one violated constraint of one input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field constraint violated by a single write.
// errors.Is(err, ErrInvalidArgument) reports true for it.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// Add records a violation and returns the receiver for chaining.
func (e *ValidationError) Add(field, msg string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: msg})
	return e
}

// Merge appends the violations of other, prefixing their field names.
func (e *ValidationError) Merge(prefix string, other *ValidationError) {
	if other == nil {
		return
	}

	for _, f := range other.Fields {
		e.Add(prefix+f.Field, f.Message)
	}
}

// Err returns nil when nothing was recorded.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}

	return e
}

// ByField groups messages by field name, the shape returned to API callers.
func (e *ValidationError) ByField() map[string][]string {
	res := make(map[string][]string, len(e.Fields))
	for _, f := range e.Fields {
		res[f.Field] = append(res[f.Field], f.Message)
	}

	return res
}

// NewValidationError is a shortcut for a single-field violation.
func NewValidationError(field, msg string) *ValidationError {
	return (&ValidationError{}).Add(field, msg)
}
