package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// CachedPackageRepository decorates a PackageRepository with read-through
// caching of single-package lookups. List is never cached: listing scope
// depends on caller identity and must always hit the store. Cache faults
// degrade to the underlying repository rather than failing the request.
type CachedPackageRepository struct {
	inner  PackageRepository
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedPackageRepository wraps repo with a cache.
func NewCachedPackageRepository(repo PackageRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *CachedPackageRepository {
	return &CachedPackageRepository{
		inner:  repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "package_cache").Logger(),
	}
}

func packageCacheKey(id uuid.UUID) string {
	return "catalog:pkg:" + id.String()
}

// Create persists the package and primes the cache.
func (r *CachedPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	if err := r.inner.Create(ctx, pkg); err != nil {
		return err
	}
	r.store(ctx, pkg)
	return nil
}

// GetByID returns the cached package if present, falling back to the store.
func (r *CachedPackageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	if data, err := r.cache.Get(ctx, packageCacheKey(id)); err == nil {
		var pkg domain.Package
		if err := json.Unmarshal(data, &pkg); err == nil {
			return &pkg, nil
		}
		// Corrupt entry; drop it and fall through to the store.
		_ = r.cache.Delete(ctx, packageCacheKey(id))
	}

	pkg, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, pkg)
	return pkg, nil
}

// List always delegates to the underlying repository.
func (r *CachedPackageRepository) List(ctx context.Context, query PackageQuery) ([]*domain.Package, error) {
	return r.inner.List(ctx, query)
}

// UpdateOwned writes through and invalidates the cached entry.
func (r *CachedPackageRepository) UpdateOwned(ctx context.Context, pkg *domain.Package, ownerID int64) error {
	if err := r.inner.UpdateOwned(ctx, pkg, ownerID); err != nil {
		return err
	}
	r.invalidate(ctx, pkg.ID)
	return nil
}

// DeleteOwned deletes and invalidates the cached entry.
func (r *CachedPackageRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID int64) error {
	if err := r.inner.DeleteOwned(ctx, id, ownerID); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedPackageRepository) store(ctx context.Context, pkg *domain.Package) {
	// Owner is request-scoped state, not part of the record.
	clone := *pkg
	clone.Owner = nil

	data, err := json.Marshal(&clone)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, packageCacheKey(pkg.ID), data, r.ttl); err != nil {
		r.logger.Debug().Err(err).Str("package_id", pkg.ID.String()).Msg("cache set failed")
	}
}

func (r *CachedPackageRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, packageCacheKey(id)); err != nil {
		r.logger.Debug().Err(err).Str("package_id", id.String()).Msg("cache invalidation failed")
	}
}

// Ensure CachedPackageRepository implements PackageRepository.
var _ PackageRepository = (*CachedPackageRepository)(nil)
