package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// packageRepository implements repository.PackageRepository for SQLite.
// Timestamps are stored as UTC RFC3339 strings, so range comparisons on
// expiration_date are plain lexicographic string comparisons.
type packageRepository struct {
	db *DB
}

// NewPackageRepository creates a new SQLite package repository.
func NewPackageRepository(db *DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

// Create persists a new package.
func (r *packageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	query := `
		INSERT INTO packages (id, name, description, price, expiration_date, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		pkg.ID.String(),
		pkg.Name,
		pkg.Description,
		pkg.Price,
		formatTime(pkg.ExpirationDate),
		pkg.UserID,
		formatTime(pkg.CreatedAt),
		formatTime(pkg.UpdatedAt),
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
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id.String())
	pkg, err := scanPackage(row)
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return pkg, nil
}

// List returns packages matching the query in storage (insertion) order.
func (r *packageRepository) List(ctx context.Context, q repository.PackageQuery) ([]*domain.Package, error) {
	var (
		conds []string
		args  []interface{}
	)

	if q.OwnerID != nil {
		conds = append(conds, "p.user_id = ?")
		args = append(args, *q.OwnerID)
	}
	if q.ExpirationEquals != nil {
		conds = append(conds, "p.expiration_date = ?")
		args = append(args, formatTime(*q.ExpirationEquals))
	}
	if q.ExpirationBefore != nil {
		conds = append(conds, "p.expiration_date < ?")
		args = append(args, formatTime(*q.ExpirationBefore))
	}
	if q.ExpirationAfter != nil {
		conds = append(conds, "p.expiration_date > ?")
		args = append(args, formatTime(*q.ExpirationAfter))
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
	query += " ORDER BY p.rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		pkg := &domain.Package{}
		var id, expirationDate, createdAt, updatedAt string

		dest := []interface{}{
			&id,
			&pkg.Name,
			&pkg.Description,
			&pkg.Price,
			&expirationDate,
			&pkg.UserID,
			&createdAt,
			&updatedAt,
		}

		owner := &domain.User{}
		var ownerRole, ownerCreatedAt, ownerUpdatedAt string
		if q.IncludeOwner {
			dest = append(dest, &owner.ID, &owner.Username, &ownerRole, &ownerCreatedAt, &ownerUpdatedAt)
		}

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}

		pkg.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid package ID %q: %w", id, err)
		}
		pkg.ExpirationDate, _ = time.Parse(time.RFC3339, expirationDate)
		pkg.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		pkg.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

		if q.IncludeOwner {
			owner.Role = domain.Role(ownerRole)
			owner.CreatedAt, _ = time.Parse(time.RFC3339, ownerCreatedAt)
			owner.UpdatedAt, _ = time.Parse(time.RFC3339, ownerUpdatedAt)
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
// The WHERE clause carries both the ID and the owner, so the check and the
// write are one atomic statement.
func (r *packageRepository) UpdateOwned(ctx context.Context, pkg *domain.Package, ownerID int64) error {
	query := `
		UPDATE packages
		SET name = ?, description = ?, price = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		pkg.Name,
		pkg.Description,
		pkg.Price,
		formatTime(pkg.UpdatedAt),
		pkg.ID.String(),
		ownerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPackageNotFound
	}

	return nil
}

// DeleteOwned permanently removes the package conditional on ownership.
func (r *packageRepository) DeleteOwned(ctx context.Context, id uuid.UUID, ownerID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ? AND user_id = ?`, id.String(), ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return domain.ErrPackageNotFound
	}

	return nil
}

// scanPackage scans a single package row without owner columns.
func scanPackage(row rowScanner) (*domain.Package, error) {
	pkg := &domain.Package{}
	var id, expirationDate, createdAt, updatedAt string

	err := row.Scan(
		&id,
		&pkg.Name,
		&pkg.Description,
		&pkg.Price,
		&expirationDate,
		&pkg.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	pkg.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid package ID %q: %w", id, err)
	}
	pkg.ExpirationDate, _ = time.Parse(time.RFC3339, expirationDate)
	pkg.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	pkg.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return pkg, nil
}

// formatTime renders a timestamp as a UTC RFC3339 string for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Ensure packageRepository implements repository.PackageRepository.
var _ repository.PackageRepository = (*packageRepository)(nil)
