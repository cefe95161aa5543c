// Package auth provides credential tokens, identity resolution, and the
// package access policy for the catalog API.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/prn-tf/package-catalog/internal/domain"
)

// Token errors
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrMissingClaim = errors.New("missing required claim")
)

// Claims is the identity information carried by a credential token.
type Claims struct {
	// UserID is the subject's user ID.
	UserID int64

	// Role is the subject's role at issuance time.
	Role domain.Role
}

// TokenService issues and verifies HS256-signed credential tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given signing secret and
// token lifetime.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue creates a signed credential token for the user, expiring after the
// configured lifetime.
func (s *TokenService) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(user.ID, 10),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates the token signature and expiry and extracts the claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method is HS256
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		// Check if it's specifically an expiration error
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok || sub == "" {
		return nil, fmt.Errorf("%w: sub", ErrMissingClaim)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed sub claim", ErrInvalidToken)
	}

	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: userID, Role: domain.Role(role)}, nil
}
