package memory

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// TokenBlacklist holds access tokens revoked by logout until they would
// have expired anyway. In-memory on purpose: access tokens are short-lived
// and a restart only un-revokes tokens whose refresh token is already
// revoked in the database.
type TokenBlacklist struct {
	cache *cache.Cache
}

func NewTokenBlacklist() *TokenBlacklist {
	c := cache.New(24*time.Hour, 10*time.Minute)
	return &TokenBlacklist{cache: c}
}

func (b *TokenBlacklist) Revoke(token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	b.cache.Set(token, struct{}{}, ttl)
}

func (b *TokenBlacklist) IsRevoked(token string) bool {
	_, found := b.cache.Get(token)
	return found
}
