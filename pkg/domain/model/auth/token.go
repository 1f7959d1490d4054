package auth

import (
	"time"

	"github.com/google/uuid"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

// TokenID identifies a session token
type TokenID string

// TokenSecret is the secret half of a session token pair
type TokenSecret string

// Token is an authenticated caller session. Tokens are opaque pairs; how a
// caller obtained one (SSO, provisioning, no-auth mode) is outside the
// engine's scope.
type Token struct {
	ID        TokenID
	Secret    TokenSecret
	Sub       types.UserID
	Email     string
	Name      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

const tokenTTL = 24 * time.Hour

// NewToken creates a new session token for the given user
func NewToken(sub types.UserID, email, name string) *Token {
	now := time.Now().UTC()
	return &Token{
		ID:        TokenID(uuid.NewString()),
		Secret:    TokenSecret(uuid.NewString()),
		Sub:       sub,
		Email:     email,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(tokenTTL),
	}
}

// NewAnonymousUser returns the fixed token used when authentication is
// disabled (development mode)
func NewAnonymousUser() *Token {
	return &Token{
		ID:    TokenID("anonymous"),
		Sub:   types.UserID("anonymous"),
		Email: "anonymous@localhost",
		Name:  "Anonymous",
	}
}

// IsExpired reports whether the token has passed its expiry
func (t *Token) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
