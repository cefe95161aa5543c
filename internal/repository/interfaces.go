// Package repository defines data access interfaces for the package catalog.
// These interfaces abstract database operations, allowing for different
// implementations (PostgreSQL, SQLite, in-memory for testing) while keeping
// the service layer clean.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// =============================================================================
// User Repository
// =============================================================================

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create creates a new user. Returns domain.ErrUserAlreadyExists if the
	// username is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID. Returns domain.ErrUserNotFound if no
	// such user exists.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// List returns up to limit users in creation order. A non-positive
	// limit applies a default.
	List(ctx context.Context, limit int) ([]*domain.User, error)
}

// =============================================================================
// Package Repository
// =============================================================================

// PackageRepository defines the interface for package data access.
type PackageRepository interface {
	// Create persists a new package.
	Create(ctx context.Context, pkg *domain.Package) error

	// GetByID retrieves a package by ID. Returns domain.ErrPackageNotFound
	// if no such package exists.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error)

	// List returns packages matching the query in storage order.
	List(ctx context.Context, query PackageQuery) ([]*domain.Package, error)

	// UpdateOwned persists the package's mutable fields, conditional on the
	// row still being owned by ownerID. The ownership check and the write
	// are a single statement, so a concurrent delete or a lost ownership
	// race surfaces as domain.ErrPackageNotFound instead of silently doing
	// nothing.
	UpdateOwned(ctx context.Context, pkg *domain.Package, ownerID int64) error

	// DeleteOwned permanently removes the package, conditional on ownership.
	// Same atomicity contract as UpdateOwned.
	DeleteOwned(ctx context.Context, id uuid.UUID, ownerID int64) error
}

// PackageQuery is the scoping filter applied to package list operations.
// The zero value matches every package.
type PackageQuery struct {
	// OwnerID restricts results to packages owned by this user.
	// Nil means no ownership restriction (admin scope).
	OwnerID *int64

	// ExpirationEquals matches packages expiring at exactly this instant.
	// Ignored when either bound below is set; the bounds overwrite the
	// exact match by assignment order rather than merging with it.
	ExpirationEquals *time.Time

	// ExpirationBefore matches packages expiring strictly before this instant.
	ExpirationBefore *time.Time

	// ExpirationAfter matches packages expiring strictly after this instant.
	ExpirationAfter *time.Time

	// IncludeOwner eagerly resolves each package's owning user.
	IncludeOwner bool
}
