package core

import (
	"context"
	"time"
)

// CachePolicyKind cache policy kind
type CachePolicyKind int

const (
	// CachePolicyNoCache bypass the store entirely
	CachePolicyNoCache CachePolicyKind = iota
	// CachePolicyUseCache serve a valid entry, fetch and fill on miss
	CachePolicyUseCache
	// CachePolicyRefreshCache always fetch and overwrite
	CachePolicyRefreshCache
)

// CachePolicy how a read should interact with the cache. TTL of zero under
// UseCache means the executor's default TTL.
type CachePolicy struct {
	Kind CachePolicyKind
	TTL  time.Duration
}

// NoCache bypass policy
func NoCache() CachePolicy {
	return CachePolicy{Kind: CachePolicyNoCache}
}

// UseCache cache-first policy with an optional ttl override
func UseCache(ttl time.Duration) CachePolicy {
	return CachePolicy{Kind: CachePolicyUseCache, TTL: ttl}
}

// RefreshCache force-fetch policy
func RefreshCache() CachePolicy {
	return CachePolicy{Kind: CachePolicyRefreshCache}
}

// FetchFunc the wrapped read operation.
type FetchFunc func(ctx context.Context) (interface{}, error)

// ICacheStore key/value store with per-entry expiry. Expired entries behave
// exactly like absent ones; sweeping is lazy.
type ICacheStore interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{}, ttl time.Duration)
	Remove(key string)
	Clear()
	IsValid(key string) bool
}

// ICachePolicyExecutor runs a fetch under a cache policy.
type ICachePolicyExecutor interface {
	Execute(ctx context.Context, key string, policy CachePolicy, fetch FetchFunc) (interface{}, error)
}
