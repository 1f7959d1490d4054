package usecase

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// AuthUseCaseInterface abstracts session handling so the HTTP layer works the
// same against real token validation and the no-auth development mode
type AuthUseCaseInterface interface {
	// IssueToken creates and stores a new session token for a user
	IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error)

	// ValidateToken verifies a token pair and returns the session
	ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error)

	// Logout invalidates a session token
	Logout(ctx context.Context, tokenID auth.TokenID) error

	// IsNoAuthn reports whether authentication is disabled
	IsNoAuthn() bool
}

// AuthUseCase validates session token pairs against the token store
type AuthUseCase struct {
	repo  interfaces.Repository
	cache *authCache
}

func NewAuthUseCase(repo interfaces.Repository) *AuthUseCase {
	return &AuthUseCase{
		repo:  repo,
		cache: newAuthCache(),
	}
}

// IssueToken creates a fresh session token and persists it
func (uc *AuthUseCase) IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error) {
	if err := sub.Validate(); err != nil {
		return nil, goerr.Wrap(types.ErrInvalidInput, "invalid user ID", goerr.V("sub", sub))
	}

	token := auth.NewToken(sub, email, name)
	if err := uc.repo.PutToken(ctx, token); err != nil {
		return nil, goerr.Wrap(err, "failed to store token")
	}
	return token, nil
}

// ValidateToken verifies the token pair. Every failure maps to
// types.ErrUnauthenticated: a caller cannot distinguish a missing token from
// a wrong secret or an expired session.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	if token, ok := uc.cache.get(tokenID); ok {
		if !secretMatches(token.Secret, tokenSecret) {
			return nil, goerr.Wrap(types.ErrUnauthenticated, "invalid token secret")
		}
		if token.IsExpired(time.Now().UTC()) {
			uc.cache.remove(tokenID)
			return nil, goerr.Wrap(types.ErrUnauthenticated, "token expired")
		}
		return token, nil
	}

	token, err := uc.repo.GetToken(ctx, tokenID)
	if err != nil {
		return nil, goerr.Wrap(types.ErrUnauthenticated, "unknown token", goerr.V("token_id", tokenID))
	}

	if !secretMatches(token.Secret, tokenSecret) {
		return nil, goerr.Wrap(types.ErrUnauthenticated, "invalid token secret")
	}

	if token.IsExpired(time.Now().UTC()) {
		if err := uc.repo.DeleteToken(ctx, tokenID); err != nil {
			return nil, goerr.Wrap(err, "failed to delete expired token", goerr.V("token_id", tokenID))
		}
		return nil, goerr.Wrap(types.ErrUnauthenticated, "token expired")
	}

	uc.cache.set(token)
	return token, nil
}

// Logout deletes the token from cache and store
func (uc *AuthUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	uc.cache.remove(tokenID)
	return uc.repo.DeleteToken(ctx, tokenID)
}

// IsNoAuthn returns false for regular AuthUseCase
func (uc *AuthUseCase) IsNoAuthn() bool {
	return false
}

func secretMatches(stored, given auth.TokenSecret) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
