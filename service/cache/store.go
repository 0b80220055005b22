package cache

import (
	"time"

	"github.com/bluele/gcache"

	"github.com/christopherkarani/blend-client/core"
)

const defaultCapacity = 2048

// NewStore lru store with per-entry expiry. Entries expire lazily: an
// expired key simply reads as a miss, nothing sweeps in the background.
func NewStore(capacity int) core.ICacheStore {
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &store{
		cache: gcache.New(capacity).LRU().Build(),
	}
}

type store struct {
	cache gcache.Cache
}

func (s *store) Get(key string) (interface{}, bool) {
	v, err := s.cache.GetIFPresent(key)
	if err != nil {
		return nil, false
	}
	return v, true
}

func (s *store) Set(key string, value interface{}, ttl time.Duration) {
	if ttl > 0 {
		_ = s.cache.SetWithExpire(key, value, ttl)
		return
	}
	_ = s.cache.Set(key, value)
}

func (s *store) Remove(key string) {
	s.cache.Remove(key)
}

func (s *store) Clear() {
	s.cache.Purge()
}

func (s *store) IsValid(key string) bool {
	_, err := s.cache.GetIFPresent(key)
	return err == nil
}
