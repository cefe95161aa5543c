// Package crypto provides key-generation utilities for the package catalog.
package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// JWTSecretSize is the byte length of generated token-signing secrets.
// 32 bytes gives a 256-bit key, matching the HMAC-SHA256 block needs.
const JWTSecretSize = 32

// GenerateJWTSecret generates a random token-signing secret and returns
// it as a hex string suitable for CATALOG_AUTH_JWT_SECRET.
func GenerateJWTSecret() (string, error) {
	key := make([]byte, JWTSecretSize)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(key), nil
}
