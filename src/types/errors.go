package types

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is returned when required input is missing or malformed.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Fields, ", "))
}

func NewValidationError(msg string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: msg}
}

// NotFoundError is returned when an identifier does not resolve to a record.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

func IsNotFoundError(err error) bool {
	var nerr *NotFoundError
	return errors.As(err, &nerr)
}
