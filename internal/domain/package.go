package domain

import (
	"time"

	"github.com/google/uuid"
)

// Package represents a catalog package record.
// Every package references exactly one owning user; the owner is fixed at
// creation time and never changes, even under update.
type Package struct {
	// ID is the unique identifier for the package (system-generated).
	ID uuid.UUID `json:"id"`

	// Name is the display name of the package.
	Name string `json:"name"`

	// Description is the human-readable description.
	Description string `json:"description"`

	// Price is the package price. Must be non-negative.
	Price float64 `json:"price"`

	// ExpirationDate is when the package expires (timestamp precision).
	ExpirationDate time.Time `json:"expirationDate"`

	// UserID references the owning user. Immutable once set.
	UserID int64 `json:"userId"`

	// Owner is the eagerly-resolved owning user. Only populated for
	// admin list queries; nil otherwise.
	Owner *User `json:"owner,omitempty"`

	// CreatedAt is the timestamp when the package was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the package was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewPackage creates a new Package owned by the given user.
func NewPackage(ownerID int64, name, description string, price float64, expirationDate time.Time) *Package {
	now := time.Now().UTC()
	return &Package{
		ID:             uuid.New(),
		Name:           name,
		Description:    description,
		Price:          price,
		ExpirationDate: expirationDate,
		UserID:         ownerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks the package's required-field and range constraints.
func (p *Package) Validate() error {
	if p.Name == "" {
		return ErrPackageNameRequired
	}
	if p.Description == "" {
		return ErrPackageDescriptionRequired
	}
	if p.Price < 0 {
		return ErrPackagePriceNegative
	}
	if p.ExpirationDate.IsZero() {
		return ErrPackageExpirationRequired
	}
	if p.UserID == 0 {
		return ErrPackageOwnerRequired
	}
	return nil
}

// PackagePatch contains the updatable fields of a package. Nil fields are
// left unchanged. The expiration date and owner are not updatable.
type PackagePatch struct {
	Name        *string
	Description *string
	Price       *float64
}

// Apply copies the patch's non-nil fields onto the package and bumps the
// update timestamp.
func (p *Package) Apply(patch PackagePatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	p.UpdatedAt = time.Now().UTC()
}
