package post

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound reports that no post has the requested id.
var ErrNotFound = errors.New("post not found")

// Reason classifies a rejected field.
type Reason string

const (
	ReasonRequired Reason = "required"
	ReasonTooLong  Reason = "too_long"
)

// FieldError is one rejected input field, named by its column.
type FieldError struct {
	Field  string
	Reason Reason
	// Limit is the maximum length in characters for ReasonTooLong.
	Limit int
}

func (e FieldError) String() string {
	if e.Reason == ReasonTooLong {
		return fmt.Sprintf("%s %s (max %d)", e.Field, e.Reason, e.Limit)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// ValidationError lists every rejected field of an Input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		parts[i] = field.String()
	}
	return "invalid post: " + strings.Join(parts, ", ")
}

// Field returns the error recorded for field, if any.
func (e *ValidationError) Field(field string) (FieldError, bool) {
	for _, fieldErr := range e.Fields {
		if fieldErr.Field == field {
			return fieldErr, true
		}
	}
	return FieldError{}, false
}

// StoreError wraps a failed store round-trip or an unreadable row.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "post store: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
