// Package service provides business logic for the package catalog.
package service

import "errors"

// Common service errors.
var (
	// ErrInvalidUsername indicates the username fails length constraints.
	ErrInvalidUsername = errors.New("invalid username: must be 3-255 characters")

	// ErrInvalidPassword indicates the password fails length constraints.
	ErrInvalidPassword = errors.New("invalid password: must be at least 8 characters")

	// ErrInternalError indicates an unexpected infrastructure failure.
	ErrInternalError = errors.New("internal server error")
)
