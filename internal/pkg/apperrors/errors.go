package apperrors

import "errors"

// Common errors
var (
	// User errors
	ErrUserAlreadyExists = errors.New("user with this uid or email already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)
