// Package auth issues and verifies the signed, time-bounded credentials
// that authenticate requests, and wraps password hashing.
package auth

import (
	"context"
	"time"
)

// TokenService defines operations for managing authentication tokens.
type TokenService interface {
	// IssueToken creates a signed credential carrying the user's id.
	// Validity is fully determined by signature and embedded expiry; there
	// is no server-side session record and re-issuing for the same user is
	// always permitted.
	IssueToken(ctx context.Context, userID int64) (Credential, error)

	// ValidateToken validates the provided token string and extracts the
	// claims, or returns an error if validation fails (expired, invalid
	// signature, malformed).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Credential is an issued token plus the fixed duration it remains valid.
type Credential struct {
	Token     string        `json:"token"`
	ExpiresIn time.Duration `json:"expiresIn"`
}

// Claims represents the verified claims extracted from a token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID int64 `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
