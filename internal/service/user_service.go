// Package service provides business logic for the package catalog.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/prn-tf/package-catalog/internal/auth"
	"github.com/prn-tf/package-catalog/internal/domain"
	"github.com/prn-tf/package-catalog/internal/repository"
)

// UserService handles registration and login.
type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	logger   zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// RegisterInput contains the data needed to register a new user.
type RegisterInput struct {
	Username string
	Password string
	Role     domain.Role
}

// Register creates a new user account. Registration is public; the
// password is stored only as a bcrypt hash, and the created user is never
// echoed back to the caller.
func (s *UserService) Register(ctx context.Context, input RegisterInput) error {
	if err := s.validateRegisterInput(input); err != nil {
		return err
	}

	// Check if the username is already taken
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to check username existence")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	if exists {
		return domain.ErrUserAlreadyExists
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	user := domain.NewUser(input.Username, string(passwordHash), input.Role)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique constraint closes the race between the existence
		// check and the insert.
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return domain.ErrUserAlreadyExists
		}
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to create user")
		return fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Str("role", string(user.Role)).
		Msg("user registered")

	return nil
}

// Login verifies the credentials and issues a credential token.
// Unknown usernames and wrong passwords are indistinguishable to the
// caller: both return domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		// Log but don't expose whether the username exists
		s.logger.Debug().Str("username", username).Msg("user not found during login")
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("username", username).Msg("invalid password during login")
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return "", fmt.Errorf("%w: failed to issue token", ErrInternalError)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("user logged in")

	return token, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		s.logger.Error().Err(err).Int64("user_id", id).Msg("failed to get user")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return user, nil
}

// List returns up to limit users in creation order.
func (s *UserService) List(ctx context.Context, limit int) ([]*domain.User, error) {
	users, err := s.userRepo.List(ctx, limit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list users")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}
	return users, nil
}

// validateRegisterInput validates the input for registering a user.
func (s *UserService) validateRegisterInput(input RegisterInput) error {
	if len(input.Username) < 3 || len(input.Username) > 255 {
		return ErrInvalidUsername
	}
	if len(input.Password) < 8 {
		return ErrInvalidPassword
	}
	if !input.Role.Valid() {
		return domain.ErrInvalidRole
	}
	return nil
}
