package memory

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
	"github.com/govern-lab/aegis/pkg/domain/types"
)

type tokenStore struct {
	mu     sync.RWMutex
	tokens map[auth.TokenID]*auth.Token
}

func newTokenStore() *tokenStore {
	return &tokenStore{
		tokens: make(map[auth.TokenID]*auth.Token),
	}
}

func (m *Memory) PutToken(ctx context.Context, token *auth.Token) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	cloned := *token
	m.tokens.tokens[token.ID] = &cloned
	return nil
}

func (m *Memory) GetToken(ctx context.Context, tokenID auth.TokenID) (*auth.Token, error) {
	m.tokens.mu.RLock()
	defer m.tokens.mu.RUnlock()

	token, exists := m.tokens.tokens[tokenID]
	if !exists {
		return nil, goerr.Wrap(types.ErrNotFound, "token not found")
	}

	cloned := *token
	return &cloned, nil
}

func (m *Memory) DeleteToken(ctx context.Context, tokenID auth.TokenID) error {
	m.tokens.mu.Lock()
	defer m.tokens.mu.Unlock()

	delete(m.tokens.tokens, tokenID)
	return nil
}
