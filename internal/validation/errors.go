// Package validation implements the request validation and
// relationship-reconciliation pipeline: pagination bounds, asynchronous
// existence/uniqueness checks against the backing store, connect/disconnect
// reconciliation for many-to-many relations, and ownership authorization.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
)

// FieldError is a single field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Errors is the aggregate error set collected across a request's pipeline.
// Multiple validators may contribute before a single failure response is
// emitted, so one request can report several simultaneous field errors.
type Errors []FieldError

// Add appends a field-level error to the set.
func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// Has reports whether the set contains an error for the given field.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e Errors) Error() string {
	var buf bytes.Buffer
	for i, fe := range e {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(fe.Error())
	}
	return buf.String()
}

// MarshalJSON renders the set as an array of single-entry objects,
// e.g. [{"title":"Title cannot be empty"},{"authorId":"Author does not exist"}].
func (e Errors) MarshalJSON() ([]byte, error) {
	out := make([]map[string]string, 0, len(e))
	for _, fe := range e {
		out = append(out, map[string]string{fe.Field: fe.Message})
	}
	return json.Marshal(out)
}

// Sentinel errors surfaced by pipelines alongside the aggregate field set.
var (
	// ErrResourceNotFound is returned when a path-referenced resource does
	// not exist. Short-circuits the remaining stages for the request.
	ErrResourceNotFound = errors.New("Resource not found")

	// ErrNotAuthorized is returned when the principal may not mutate the
	// target resource. Surfaced with the fixed field key "authorId".
	ErrNotAuthorized = errors.New("Action is not authorized")
)
