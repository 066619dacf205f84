package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound signals that the requested record does not exist. It is a
// normal outcome for lookups by id, distinct from a storage failure.
var ErrNotFound = errors.New("record not found")

// FieldError is a single validation issue tied to an input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every failed rule for one payload so the
// caller sees all problems at once instead of fixing them one by one.
type ValidationErrors struct {
	Issues []FieldError `json:"errors"`
}

func (v *ValidationErrors) Add(field, message string) {
	v.Issues = append(v.Issues, FieldError{Field: field, Message: message})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Issues) > 0
}

func (v *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v.Issues))
	for _, issue := range v.Issues {
		msgs = append(msgs, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(msgs, ", ")
}

// AsValidationErrors unwraps err into a *ValidationErrors if it is one.
func AsValidationErrors(err error) (*ValidationErrors, bool) {
	var verr *ValidationErrors
	ok := errors.As(err, &verr)
	return verr, ok
}

// MalformedQueryError reports a list/stats query parameter that could not be
// interpreted. It is raised before any store call is made.
type MalformedQueryError struct {
	Field    string
	Value    string
	Expected string
}

func (e *MalformedQueryError) Error() string {
	return fmt.Sprintf("invalid %s %q: expected %s", e.Field, e.Value, e.Expected)
}

// AsMalformedQueryError unwraps err into a *MalformedQueryError if it is one.
func AsMalformedQueryError(err error) (*MalformedQueryError, bool) {
	var qerr *MalformedQueryError
	ok := errors.As(err, &qerr)
	return qerr, ok
}
