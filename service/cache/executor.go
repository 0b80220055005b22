package cache

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/singleflight"

	"github.com/christopherkarani/blend-client/core"
)

// NewExecutor policy executor over the store. Concurrent fetches for the
// same key collapse through singleflight, so a UseCache reader racing a
// RefreshCache writer costs at most one collapsed refetch and never sees a
// half-written entry.
func NewExecutor(store core.ICacheStore, defaultTTL time.Duration) core.ICachePolicyExecutor {
	return &executor{
		store:      store,
		defaultTTL: defaultTTL,
		sf:         &singleflight.Group{},
	}
}

type executor struct {
	store      core.ICacheStore
	defaultTTL time.Duration
	sf         *singleflight.Group
}

func (e *executor) Execute(ctx context.Context, key string, policy core.CachePolicy, fetch core.FetchFunc) (interface{}, error) {
	switch policy.Kind {
	case core.CachePolicyNoCache:
		return fetch(ctx)
	case core.CachePolicyRefreshCache:
		e.store.Remove(key)
		return e.fill(ctx, key, e.ttl(policy), fetch)
	default:
		if v, ok := e.store.Get(key); ok {
			logger.FromContext(ctx).WithField("key", key).Debugln("cache hit")
			return v, nil
		}
		return e.fill(ctx, key, e.ttl(policy), fetch)
	}
}

// fill fetch then store. A failed or cancelled fetch leaves the store
// untouched; whatever valid entry existed before stays valid.
func (e *executor) fill(ctx context.Context, key string, ttl time.Duration, fetch core.FetchFunc) (interface{}, error) {
	v, err, _ := e.sf.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.store.Set(key, v, ttl)
		return v, nil
	})

	if err != nil {
		return nil, err
	}
	return v, nil
}

func (e *executor) ttl(policy core.CachePolicy) time.Duration {
	if policy.TTL > 0 {
		return policy.TTL
	}
	return e.defaultTTL
}
