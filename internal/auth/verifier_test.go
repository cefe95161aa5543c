package auth

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// fakeUserStore serves users from a fixed map.
type fakeUserStore struct {
	users map[int64]*domain.User
}

func (s *fakeUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func TestVerifyHeader(t *testing.T) {
	tokens := NewTokenService([]byte("test-secret"), time.Hour)
	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleStandard}
	store := &fakeUserStore{users: map[int64]*domain.User{1: alice}}
	verifier := NewCredentialVerifier(tokens, store, zerolog.Nop())

	validToken, err := tokens.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	deletedUserToken, err := tokens.Issue(&domain.User{ID: 99, Role: domain.RoleStandard})
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := NewTokenService([]byte("test-secret"), -time.Hour)
	expiredToken, err := expired.Issue(alice)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   *domain.User
	}{
		{"missing header", "", nil},
		{"scheme only", "Bearer", nil},
		{"scheme with empty token", "Bearer ", nil},
		{"garbage token", "Bearer garbage", nil},
		{"expired token", "Bearer " + expiredToken, nil},
		{"subject deleted after issuance", "Bearer " + deletedUserToken, nil},
		{"valid token", "Bearer " + validToken, alice},
		// The scheme word itself is not inspected; only the token matters.
		{"nonstandard scheme", "Token " + validToken, alice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := verifier.VerifyHeader(context.Background(), tt.header)
			if got != tt.want {
				t.Errorf("VerifyHeader(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}
