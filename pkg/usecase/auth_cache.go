package usecase

import (
	"sync"
	"time"

	"github.com/govern-lab/aegis/pkg/domain/model/auth"
)

const authCacheTTL = 5 * time.Minute

type cachedToken struct {
	token     *auth.Token
	expiresAt time.Time
}

// authCache keeps recently validated tokens in memory so that a request burst
// does not hit the token store once per request
type authCache struct {
	cache sync.Map
}

func newAuthCache() *authCache {
	return &authCache{}
}

func (c *authCache) get(tokenID auth.TokenID) (*auth.Token, bool) {
	val, ok := c.cache.Load(tokenID)
	if !ok {
		return nil, false
	}

	cached := val.(*cachedToken)
	if time.Now().After(cached.expiresAt) {
		c.cache.Delete(tokenID)
		return nil, false
	}

	return cached.token, true
}

func (c *authCache) set(token *auth.Token) {
	c.cache.Store(token.ID, &cachedToken{
		token:     token,
		expiresAt: time.Now().Add(authCacheTTL),
	})
}

func (c *authCache) remove(tokenID auth.TokenID) {
	c.cache.Delete(tokenID)
}
