// Package domain defines the core types, interfaces, and errors for the lookup catalog.
package domain

import "fmt"

// ValidationError indicates invalid input, such as a malformed manifest or table name.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// QueryError records which table and which query step failed.
// The underlying engine error is kept as-is.
type QueryError struct {
	Table string
	Step  string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Step, e.Table, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
