package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/package-catalog/internal/auth"
	"github.com/prn-tf/package-catalog/internal/domain"
)

// mockUserRepository is a hand-rolled mock with overridable methods.
type mockUserRepository struct {
	createFunc           func(ctx context.Context, user *domain.User) error
	getByIDFunc          func(ctx context.Context, id int64) (*domain.User, error)
	getByUsernameFunc    func(ctx context.Context, username string) (*domain.User, error)
	existsByUsernameFunc func(ctx context.Context, username string) (bool, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFunc != nil {
		return m.getByUsernameFunc(ctx, username)
	}
	return nil, domain.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFunc != nil {
		return m.existsByUsernameFunc(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepository) List(ctx context.Context, limit int) ([]*domain.User, error) {
	return nil, nil
}

func newTestUserService(repo *mockUserRepository) *UserService {
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	return NewUserService(repo, tokens, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		input   RegisterInput
		repo    *mockUserRepository
		wantErr error
	}{
		{
			name:  "success",
			input: RegisterInput{Username: "alice", Password: "password123", Role: domain.RoleStandard},
			repo:  &mockUserRepository{},
		},
		{
			name:    "username too short",
			input:   RegisterInput{Username: "ab", Password: "password123", Role: domain.RoleStandard},
			repo:    &mockUserRepository{},
			wantErr: ErrInvalidUsername,
		},
		{
			name:    "password too short",
			input:   RegisterInput{Username: "alice", Password: "short", Role: domain.RoleStandard},
			repo:    &mockUserRepository{},
			wantErr: ErrInvalidPassword,
		},
		{
			name:    "unknown role",
			input:   RegisterInput{Username: "alice", Password: "password123", Role: "superuser"},
			repo:    &mockUserRepository{},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name:  "username taken",
			input: RegisterInput{Username: "alice", Password: "password123", Role: domain.RoleStandard},
			repo: &mockUserRepository{
				existsByUsernameFunc: func(ctx context.Context, username string) (bool, error) {
					return true, nil
				},
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
		{
			name:  "username taken in insert race",
			input: RegisterInput{Username: "alice", Password: "password123", Role: domain.RoleStandard},
			repo: &mockUserRepository{
				createFunc: func(ctx context.Context, user *domain.User) error {
					return domain.ErrUserAlreadyExists
				},
			},
			wantErr: domain.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestUserService(tt.repo)

			err := svc.Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Register() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Register() error = %v", err)
			}
		})
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	var created *domain.User
	repo := &mockUserRepository{
		createFunc: func(ctx context.Context, user *domain.User) error {
			created = user
			return nil
		},
	}
	svc := newTestUserService(repo)

	err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Password: "password123",
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created == nil {
		t.Fatal("Create was not called")
	}
	if created.PasswordHash == "password123" {
		t.Fatal("password stored in cleartext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("password123")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if created.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", created.Role, domain.RoleAdmin)
	}
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	alice := &domain.User{ID: 1, Username: "alice", PasswordHash: string(hash), Role: domain.RoleStandard}

	repo := &mockUserRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			if username == "alice" {
				return alice, nil
			}
			return nil, domain.ErrUserNotFound
		},
	}
	svc := newTestUserService(repo)

	t.Run("success", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "alice", "password123")
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if token == "" {
			t.Error("Login() returned empty token")
		}
	})

	t.Run("unknown username and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Login(context.Background(), "nobody", "password123")
		_, errWrongPass := svc.Login(context.Background(), "alice", "wrongpassword")

		if !errors.Is(errUnknown, domain.ErrInvalidCredentials) {
			t.Errorf("unknown username error = %v, want ErrInvalidCredentials", errUnknown)
		}
		if !errors.Is(errWrongPass, domain.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", errWrongPass)
		}
		if errUnknown.Error() != errWrongPass.Error() {
			t.Errorf("error messages differ: %q vs %q", errUnknown, errWrongPass)
		}
	})
}

func TestLoginTokenCarriesIdentity(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin := &domain.User{ID: 9, Username: "root", PasswordHash: string(hash), Role: domain.RoleAdmin}

	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)
	repo := &mockUserRepository{
		getByUsernameFunc: func(ctx context.Context, username string) (*domain.User, error) {
			return admin, nil
		},
	}
	svc := NewUserService(repo, tokens, zerolog.Nop())

	token, err := svc.Login(context.Background(), "root", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID != 9 {
		t.Errorf("UserID = %d, want 9", claims.UserID)
	}
	if claims.Role != domain.RoleAdmin {
		t.Errorf("Role = %q, want %q", claims.Role, domain.RoleAdmin)
	}
}
