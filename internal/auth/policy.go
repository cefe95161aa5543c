package auth

import (
	"time"

	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// Package access policy. Pure decision logic, no I/O.

// ListFilter carries the optional expiration-date constraints of a list
// operation, independent of the caller's role.
type ListFilter struct {
	// ExpirationDate matches packages expiring at exactly this instant.
	ExpirationDate *time.Time

	// ExpirationDateBefore bounds the expiration strictly from above.
	ExpirationDateBefore *time.Time

	// ExpirationDateAfter bounds the expiration strictly from below.
	ExpirationDateAfter *time.Time
}

// CanCreate reports whether the caller may create packages: any
// authenticated user, regardless of role.
func CanCreate(user *domain.User) bool {
	return user != nil
}

// CanMutate reports whether the caller may update or delete the package:
// only its owner. Admins have no override here, an intentional asymmetry
// with listing visibility.
func CanMutate(user *domain.User, pkg *domain.Package) bool {
	return user != nil && user.ID == pkg.UserID
}

// ScopeForList computes the query restriction for a list operation.
// The caller must already be authenticated; resolvers reject anonymous
// callers before reaching this function.
//
// Admins see all records and get the owner reference eagerly resolved;
// everyone else is unconditionally restricted to their own records.
//
// Filter precedence: an exact ExpirationDate applies only when neither
// bound is supplied. A bound supplied after it overwrites the exact match
// (last-write by assignment order, not a logical AND-merge); the two
// bounds combine with each other.
func ScopeForList(user *domain.User, filter ListFilter) repository.PackageQuery {
	query := repository.PackageQuery{}

	if user.IsAdmin() {
		query.IncludeOwner = true
	} else {
		ownerID := user.ID
		query.OwnerID = &ownerID
	}

	query.ExpirationEquals = filter.ExpirationDate
	if filter.ExpirationDateBefore != nil || filter.ExpirationDateAfter != nil {
		query.ExpirationEquals = nil
		query.ExpirationBefore = filter.ExpirationDateBefore
		query.ExpirationAfter = filter.ExpirationDateAfter
	}

	return query
}
