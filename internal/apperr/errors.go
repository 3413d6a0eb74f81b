// Package apperr holds the error categories services return to the HTTP layer.
package apperr

import "errors"

// BadRequestError marks input the caller has to fix: malformed values,
// conflicts with existing records, references to missing records.
type BadRequestError struct {
	Message string
	Details map[string]string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// UnauthorizedError marks a caller that is not allowed to do what it asked,
// either because it is not authenticated or because its role forbids it.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message == "" {
		return "Unauthorized."
	}
	return e.Message
}

func BadRequest(message string) error {
	return &BadRequestError{Message: message}
}

// Validation returns a BadRequestError carrying per-field messages.
func Validation(details map[string]string) error {
	return &BadRequestError{Message: "Validation failed", Details: details}
}

func Unauthorized(message string) error {
	return &UnauthorizedError{Message: message}
}

func IsBadRequest(err error) bool {
	var target *BadRequestError
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}
