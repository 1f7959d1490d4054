package usecase

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/interfaces"
	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

// NoAuthnUseCase provides authentication using a fixed user, for development
// and testing only
type NoAuthnUseCase struct {
	repo  interfaces.Repository
	sub   types.UserID
	email string
	name  string
}

// NewNoAuthnUseCase creates a NoAuthnUseCase bound to the given user identity
func NewNoAuthnUseCase(repo interfaces.Repository, sub types.UserID, email, name string) *NoAuthnUseCase {
	return &NoAuthnUseCase{
		repo:  repo,
		sub:   sub,
		email: email,
		name:  name,
	}
}

// IssueToken returns a token for the fixed user without persisting it
func (uc *NoAuthnUseCase) IssueToken(ctx context.Context, sub types.UserID, email, name string) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// ValidateToken always returns a token for the fixed user
func (uc *NoAuthnUseCase) ValidateToken(ctx context.Context, tokenID auth.TokenID, tokenSecret auth.TokenSecret) (*auth.Token, error) {
	return auth.NewToken(uc.sub, uc.email, uc.name), nil
}

// Logout does nothing in no-auth mode
func (uc *NoAuthnUseCase) Logout(ctx context.Context, tokenID auth.TokenID) error {
	return nil
}

// IsNoAuthn returns true for NoAuthnUseCase
func (uc *NoAuthnUseCase) IsNoAuthn() bool {
	return true
}
