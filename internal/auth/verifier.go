package auth

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// UserStore is the subset of the user repository the verifier needs to
// resolve a token subject to a live user record.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CredentialVerifier resolves a raw Authorization header value to a caller
// identity. Every failure mode collapses to nil (anonymous): the caller
// cannot distinguish a missing token from an expired one or from a token
// whose subject no longer exists. The reasons are still logged at debug
// level for observability.
type CredentialVerifier struct {
	tokens *TokenService
	users  UserStore
	logger zerolog.Logger
}

// NewCredentialVerifier creates a CredentialVerifier.
func NewCredentialVerifier(tokens *TokenService, users UserStore, logger zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{
		tokens: tokens,
		users:  users,
		logger: logger.With().Str("component", "credential_verifier").Logger(),
	}
}

// VerifyHeader resolves the raw value of an Authorization header, expected
// form "<scheme> <token>", to a User. Performs one store lookup when the
// token is structurally valid. Never returns an error.
func (v *CredentialVerifier) VerifyHeader(ctx context.Context, raw string) *domain.User {
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) < 2 || parts[1] == "" {
		return nil
	}

	claims, err := v.tokens.Verify(parts[1])
	if err != nil {
		v.logger.Debug().Err(err).Msg("token validation failed")
		return nil
	}

	user, err := v.users.GetByID(ctx, claims.UserID)
	if err != nil {
		// Token subject deleted after issuance, or the store failed.
		v.logger.Debug().Err(err).Int64("user_id", claims.UserID).Msg("token subject not resolvable")
		return nil
	}

	return user
}
