package auth

import (
	"context"

	"github.com/govern-lab/aegis/pkg/domain/types"
)

type ctxKey struct{}

// ContextWithToken attaches the authenticated token to the context
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext retrieves the authenticated token, or nil if the request
// carried no identity
func TokenFromContext(ctx context.Context) *Token {
	token, _ := ctx.Value(ctxKey{}).(*Token)
	return token
}

// UserIDFromContext returns the caller's user ID. Every ownership-scoped
// operation starts here; an empty result must be rejected as unauthenticated.
func UserIDFromContext(ctx context.Context) (types.UserID, error) {
	token := TokenFromContext(ctx)
	if token == nil || token.Sub == "" {
		return "", types.ErrUnauthenticated
	}
	return token.Sub, nil
}
