package auth

import (
	"context"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// identityKey is the key type for storing the caller identity in a
// context.Context.
type identityKey struct{}

// WithIdentity returns a new context carrying the resolved caller.
// A nil user records an anonymous caller.
func WithIdentity(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, identityKey{}, user)
}

// IdentityFromContext retrieves the resolved caller from the context.
// Returns nil for anonymous callers and for contexts the identity
// middleware never saw.
func IdentityFromContext(ctx context.Context) *domain.User {
	user, ok := ctx.Value(identityKey{}).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
