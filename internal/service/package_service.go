package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/auth"
	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// PackageService handles package CRUD with ownership enforcement.
// Each operation is a single check-then-act against the repository; the
// mutating step is itself conditional on ownership, so a race lost between
// the check and the act surfaces as domain.ErrPackageNotFound.
type PackageService struct {
	packageRepo repository.PackageRepository
	logger      zerolog.Logger
}

// NewPackageService creates a new PackageService.
func NewPackageService(packageRepo repository.PackageRepository, logger zerolog.Logger) *PackageService {
	return &PackageService{
		packageRepo: packageRepo,
		logger:      logger.With().Str("service", "package").Logger(),
	}
}

// CreatePackageInput contains the data needed to create a package.
// The owner is never taken from the request; it is forced to the caller.
type CreatePackageInput struct {
	Name           string
	Description    string
	Price          float64
	ExpirationDate time.Time
}

// Create creates a package owned by the caller. Any authenticated user,
// regardless of role, may create.
func (s *PackageService) Create(ctx context.Context, caller *domain.User, input CreatePackageInput) (*domain.Package, error) {
	if !auth.CanCreate(caller) {
		return nil, domain.ErrAuthenticationRequired
	}

	pkg := domain.NewPackage(caller.ID, input.Name, input.Description, input.Price, input.ExpirationDate)
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		s.logger.Error().Err(err).Str("name", input.Name).Msg("failed to create package")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("package_id", pkg.ID.String()).
		Int64("owner_id", caller.ID).
		Msg("package created")

	return pkg, nil
}

// Get retrieves a package by ID. Deliberately not gated on identity or
// ownership; any caller may read any package by ID.
func (s *PackageService) Get(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		s.logger.Error().Err(err).Str("package_id", id.String()).Msg("failed to get package")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return pkg, nil
}

// List returns the packages visible to the caller: all of them for admins
// (with the owner eagerly resolved), only the caller's own otherwise.
func (s *PackageService) List(ctx context.Context, caller *domain.User, filter auth.ListFilter) ([]*domain.Package, error) {
	if caller == nil {
		return nil, domain.ErrAuthenticationRequired
	}

	packages, err := s.packageRepo.List(ctx, auth.ScopeForList(caller, filter))
	if err != nil {
		s.logger.Error().Err(err).Int64("caller_id", caller.ID).Msg("failed to list packages")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	return packages, nil
}

// Update patches a package's name, description, and price. Only the owner
// may update; admins have no override. The expiration date and owner are
// not updatable.
func (s *PackageService) Update(ctx context.Context, caller *domain.User, id uuid.UUID, patch domain.PackagePatch) (*domain.Package, error) {
	if caller == nil {
		return nil, domain.ErrAuthenticationRequired
	}

	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanMutate(caller, pkg) {
		return nil, domain.ErrNotPackageOwner
	}

	pkg.Apply(patch)
	if err := pkg.Validate(); err != nil {
		return nil, err
	}

	if err := s.packageRepo.UpdateOwned(ctx, pkg, caller.ID); err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			// Deleted between the ownership check and the write.
			return nil, domain.ErrPackageNotFound
		}
		s.logger.Error().Err(err).Str("package_id", id.String()).Msg("failed to update package")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("package_id", pkg.ID.String()).
		Int64("owner_id", caller.ID).
		Msg("package updated")

	return pkg, nil
}

// Delete permanently removes a package. Only the owner may delete; admins
// have no override. Returns the record's last-known state.
func (s *PackageService) Delete(ctx context.Context, caller *domain.User, id uuid.UUID) (*domain.Package, error) {
	if caller == nil {
		return nil, domain.ErrAuthenticationRequired
	}

	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.CanMutate(caller, pkg) {
		return nil, domain.ErrNotPackageOwner
	}

	if err := s.packageRepo.DeleteOwned(ctx, id, caller.ID); err != nil {
		if errors.Is(err, domain.ErrPackageNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		s.logger.Error().Err(err).Str("package_id", id.String()).Msg("failed to delete package")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Str("package_id", pkg.ID.String()).
		Int64("owner_id", caller.ID).
		Msg("package deleted")

	return pkg, nil
}
