package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// userRepository implements repository.UserRepository for SQLite.
type userRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user.
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt.UTC().Format(time.RFC3339),
		user.UpdatedAt.UTC().Format(time.RFC3339),
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username taken", domain.ErrUserAlreadyExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id

	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername retrieves a user by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		WHERE username = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// ExistsByUsername checks if a user with the given username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check username existence: %w", err)
	}
	return count > 0, nil
}

// List returns up to limit users in creation order.
func (r *userRepository) List(ctx context.Context, limit int) ([]*domain.User, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, username, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY id
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// rowScanner abstracts sql.Row for single-row scans.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *userRepository) scanUser(row rowScanner) (*domain.User, error) {
	user := &domain.User{}
	var role, createdAt, updatedAt string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&role,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Role = domain.Role(role)
	user.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return user, nil
}

// Ensure userRepository implements repository.UserRepository.
var _ repository.UserRepository = (*userRepository)(nil)
