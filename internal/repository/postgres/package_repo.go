package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// packageRepository implements repository.PackageRepository for PostgreSQL.
type packageRepository struct {
	db *DB
}

// NewPackageRepository creates a new PostgreSQL package repository.
func NewPackageRepository(db *DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

// Create persists a new package.
func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	query := `
		INSERT INTO packages (id, name, description, price, expiration_date, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.ExpirationDate,
		pkg.UserID,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}

	return nil
}

// GetByID retrieves a package by ID.
func (r *packageRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Package, error) {
	query := `
		SELECT id, name, description, price, expiration_date, user_id, created_at, updated_at
		FROM packages
		WHERE id = $1
	`

	pkg := &domain.Package{}
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&pkg.ExpirationDate,
		&pkg.UserID,
		&pkg.CreatedAt,
		&pkg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return pkg, nil
}

// List returns packages matching the query in insertion order.
func (r *packageRepository) List(ctx context.Context, q repository.PackageQuery) ([]*domain.Package, error) {
	var (
		conds []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.OwnerID != nil {
		conds = append(conds, "p.user_id = "+arg(*q.OwnerID))
	}
	if q.ExpirationEquals != nil {
		conds = append(conds, "p.expiration_date = "+arg(*q.ExpirationEquals))
	}
	if q.ExpirationBefore != nil {
		conds = append(conds, "p.expiration_date < "+arg(*q.ExpirationBefore))
	}
	if q.ExpirationAfter != nil {
		conds = append(conds, "p.expiration_date > "+arg(*q.ExpirationAfter))
	}

	columns := `p.id, p.name, p.description, p.price, p.expiration_date, p.user_id, p.created_at, p.updated_at`
	from := `FROM packages p`
	if q.IncludeOwner {
		columns += `, u.id, u.username, u.role, u.created_at, u.updated_at`
		from += ` JOIN users u ON u.id = p.user_id`
	}

	query := "SELECT " + columns + " " + from
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.seq"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		pkg := &domain.Package{}

		dest := []interface{}{
			&pkg.ID,
			&pkg.Name,
			&pkg.Description,
			&pkg.Price,
			&pkg.ExpirationDate,
			&pkg.UserID,
			&pkg.CreatedAt,
			&pkg.UpdatedAt,
		}

		owner := &domain.User{}
		var ownerRole string
		if q.IncludeOwner {
			dest = append(dest, &owner.ID, &owner.Username, &ownerRole, &owner.CreatedAt, &owner.UpdatedAt)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}

		if q.IncludeOwner {
			owner.Role = domain.Role(ownerRole)
			pkg.Owner = owner
		}

		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating packages: %w", err)
	}

	return packages, nil
}

// UpdateOwned persists the package's mutable fields conditional on ownership.
func (r *packageRepository) UpdateOwned(ctx context.Context, pkg *domain.Package, ownerID int64) error {
	query := `
		UPDATE packages
		SET name = $1, description = $2, price = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6
	`

	tag, err := r.db.Pool.Exec(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		pkg.UpdatedAt,
		pkg.ID,
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}

	return nil
}

// DeleteOwned permanently removes the package conditional on ownership.
func (r *packageRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID int64) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM packages WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrPackageNotFound
	}

	return nil
}

// Ensure packageRepository implements repository.PackageRepository.
var _ repository.PackageRepository = (*packageRepository)(nil)
