package models

import "github.com/juju/errors"

// FieldError reports a missing or unacceptable request field. It satisfies
// errors.Is(err, errors.NotValid).
type FieldError struct {
	Field   string
	Problem string
}

func NewFieldError(field, problem string) *FieldError {
	return &FieldError{Field: field, Problem: problem}
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Problem
}

func (e *FieldError) Is(target error) bool {
	return target == errors.NotValid
}
