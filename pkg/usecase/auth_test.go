package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
	"github.com/govern-lab/aegis/pkg/repository/memory"
	"github.com/govern-lab/aegis/pkg/usecase"
)

func TestAuthUseCase(t *testing.T) {
	t.Run("issued token validates", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		token, err := uc.IssueToken(ctx, "user-1", "user@example.com", "Test User")
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal(types.UserID("user-1"))

		validated, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.Sub).Equal(types.UserID("user-1"))
		gt.Value(t, validated.Email).Equal("user@example.com")
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		token, err := uc.IssueToken(ctx, "user-1", "user@example.com", "Test User")
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token.ID, "wrong-secret")
		gt.Bool(t, errors.Is(err, types.ErrUnauthenticated)).True()
	})

	t.Run("unknown token is rejected", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		_, err := uc.ValidateToken(ctx, "no-such-token", "secret")
		gt.Bool(t, errors.Is(err, types.ErrUnauthenticated)).True()
	})

	t.Run("expired token is rejected and removed", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		token := auth.NewToken("user-1", "user@example.com", "Test User")
		token.ExpiresAt = time.Now().UTC().Add(-time.Minute)
		gt.NoError(t, repo.PutToken(ctx, token)).Required()

		_, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.Bool(t, errors.Is(err, types.ErrUnauthenticated)).True()

		// The expired token was purged from the store
		_, err = repo.GetToken(ctx, token.ID)
		gt.Bool(t, errors.Is(err, types.ErrNotFound)).True()
	})

	t.Run("second validation is served from cache", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		token, err := uc.IssueToken(ctx, "user-1", "user@example.com", "Test User")
		gt.NoError(t, err).Required()

		_, err = uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()

		// Deleting the stored token does not invalidate the cached session
		gt.NoError(t, repo.DeleteToken(ctx, token.ID)).Required()
		validated, err := uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()
		gt.Value(t, validated.Sub).Equal(types.UserID("user-1"))
	})

	t.Run("logout drops cache and store", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		token, err := uc.IssueToken(ctx, "user-1", "user@example.com", "Test User")
		gt.NoError(t, err).Required()
		_, err = uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.NoError(t, err).Required()

		gt.NoError(t, uc.Logout(ctx, token.ID)).Required()

		_, err = uc.ValidateToken(ctx, token.ID, token.Secret)
		gt.Bool(t, errors.Is(err, types.ErrUnauthenticated)).True()
	})

	t.Run("rejects empty user ID", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.NewAuthUseCase(repo)
		ctx := context.Background()

		_, err := uc.IssueToken(ctx, "", "user@example.com", "Test User")
		gt.Bool(t, errors.Is(err, types.ErrInvalidInput)).True()
	})

	t.Run("IsNoAuthn is false", func(t *testing.T) {
		gt.Bool(t, usecase.NewAuthUseCase(memory.New()).IsNoAuthn()).False()
	})
}

func TestNoAuthnUseCase(t *testing.T) {
	repo := memory.New()
	uc := usecase.NewNoAuthnUseCase(repo, "dev-user", "dev@localhost", "dev-user")
	ctx := context.Background()

	t.Run("any token pair validates as the fixed user", func(t *testing.T) {
		token, err := uc.ValidateToken(ctx, "anything", "anything")
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal(types.UserID("dev-user"))
		gt.Value(t, token.Email).Equal("dev@localhost")
	})

	t.Run("issue ignores the requested identity", func(t *testing.T) {
		token, err := uc.IssueToken(ctx, "someone-else", "other@example.com", "Other")
		gt.NoError(t, err).Required()
		gt.Value(t, token.Sub).Equal(types.UserID("dev-user"))
	})

	t.Run("logout is a no-op", func(t *testing.T) {
		gt.NoError(t, uc.Logout(ctx, "anything"))
	})

	t.Run("IsNoAuthn is true", func(t *testing.T) {
		gt.Bool(t, uc.IsNoAuthn()).True()
	})
}
