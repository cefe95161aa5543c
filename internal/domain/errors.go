// Package domain contains the core business entities for the package catalog.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (database, network, etc.).

var (
	// ===========================================
	// User Errors
	// ===========================================

	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates a user with the same username exists.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrInvalidCredentials indicates authentication failed. Unknown
	// usernames and wrong passwords both collapse to this error so the
	// API cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidRole indicates the supplied role is not a known role.
	ErrInvalidRole = errors.New("user type must be 'admin' or 'standard'")

	// ===========================================
	// Package Errors
	// ===========================================

	// ErrPackageNotFound indicates the requested package does not exist.
	ErrPackageNotFound = errors.New("package not found")

	// ErrNotPackageOwner indicates the caller does not own the package.
	// Admins are not exempt.
	ErrNotPackageOwner = errors.New("caller is not the package owner")

	// ErrPackageNameRequired indicates the package name is missing.
	ErrPackageNameRequired = errors.New("package name is required")

	// ErrPackageDescriptionRequired indicates the description is missing.
	ErrPackageDescriptionRequired = errors.New("package description is required")

	// ErrPackagePriceNegative indicates the price is below zero.
	ErrPackagePriceNegative = errors.New("package price must be non-negative")

	// ErrPackageExpirationRequired indicates the expiration date is missing.
	ErrPackageExpirationRequired = errors.New("package expiration date is required")

	// ErrPackageOwnerRequired indicates the owning user reference is missing.
	ErrPackageOwnerRequired = errors.New("package owner is required")

	// ===========================================
	// Authentication Errors
	// ===========================================

	// ErrAuthenticationRequired indicates the operation needs an
	// authenticated caller and none was present.
	ErrAuthenticationRequired = errors.New("authentication required")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., package ID, username).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}

// WrapError wraps an error with domain context if it's not already a DomainError.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	return &DomainError{
		Err:     err,
		Message: message,
	}
}
