// Package graphql exposes the catalog over GraphQL: schema, resolvers,
// and the uniform response envelope shared by every operation.
package graphql

import (
	"errors"
	"fmt"

	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/service"
)

// Stable error codes carried in the envelope's code field. Clients branch
// on these; messages are for humans and may change.
const (
	CodeAuthRequired       = "AUTH_REQUIRED"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL"
)

// Token wraps an issued credential token.
type Token struct {
	Token string `json:"token"`
}

// PackageResponse is the envelope for operations yielding a single
// package. Data is null whenever Status is false, and for createUser,
// which never echoes the account back.
type PackageResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code,omitempty"`
	Data    *domain.Package `json:"data"`
}

// PackageListResponse is the envelope for getAllPackages.
type PackageListResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Data    []*domain.Package `json:"data"`
}

// LoginResponse is the envelope for login.
type LoginResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Data    *Token `json:"data"`
}

// classifyError maps a service or domain error to its stable code and
// client-facing message. action names the attempted mutation ("update",
// "delete") for ownership denials. Unrecognized errors collapse to
// CodeInternal with a generic message so infrastructure details never
// leak to clients.
func classifyError(err error, action string) (code, message string) {
	switch {
	case errors.Is(err, domain.ErrAuthenticationRequired):
		return CodeAuthRequired, "Authentication required"
	case errors.Is(err, domain.ErrPackageNotFound):
		return CodeNotFound, "Package not found"
	case errors.Is(err, domain.ErrNotPackageOwner):
		return CodeForbidden, fmt.Sprintf("You are not authorized to %s this package", action)
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return CodeConflict, "User already exists"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return CodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrPackageNameRequired),
		errors.Is(err, domain.ErrPackageDescriptionRequired),
		errors.Is(err, domain.ErrPackagePriceNegative),
		errors.Is(err, domain.ErrPackageExpirationRequired),
		errors.Is(err, domain.ErrPackageOwnerRequired),
		errors.Is(err, service.ErrInvalidUsername),
		errors.Is(err, service.ErrInvalidPassword):
		return CodeValidationFailed, err.Error()
	default:
		return CodeInternal, "Something went wrong"
	}
}

func packageFailure(err error, action string) *PackageResponse {
	code, message := classifyError(err, action)
	return &PackageResponse{Status: false, Message: message, Code: code}
}

func packageListFailure(err error) *PackageListResponse {
	code, message := classifyError(err, "")
	return &PackageListResponse{Status: false, Message: message, Code: code}
}

func loginFailure(err error) *LoginResponse {
	code, message := classifyError(err, "")
	return &LoginResponse{Status: false, Message: message, Code: code}
}
