package domain

import (
	"errors"
	"strings"
)

// Job errors
var (
	ErrJobNotFound    = errors.New("job not found")
	ErrNotJobOwner    = errors.New("user does not own this job")
	ErrInvalidJobType = errors.New("jobType must be one of Full-time, Part-time, Contract")
)

// ValidationError carries the names of the fields that were missing or
// invalid on a submission.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
