package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// CachePresenceStore is the single-instance default, built on go-cache.
// Entry lifetime and janitor cadence are configurable so tests can shrink
// them; production uses the 5s/30s defaults.
type CachePresenceStore struct {
	cache *cache.Cache
}

func NewCachePresenceStore(entryTTL, sweepInterval time.Duration) *CachePresenceStore {
	return &CachePresenceStore{
		cache: cache.New(entryTTL, sweepInterval),
	}
}

func (s *CachePresenceStore) Set(ctx context.Context, sessionId, role string, at time.Time) error {
	s.cache.Set(presenceKey(sessionId, role), at, cache.DefaultExpiration)
	return nil
}

func (s *CachePresenceStore) Clear(ctx context.Context, sessionId, role string) error {
	s.cache.Delete(presenceKey(sessionId, role))
	return nil
}

func (s *CachePresenceStore) Get(ctx context.Context, sessionId, role string) (time.Time, bool, error) {
	if x, found := s.cache.Get(presenceKey(sessionId, role)); found {
		return x.(time.Time), true, nil
	}
	return time.Time{}, false, nil
}

func (s *CachePresenceStore) Sweep(ctx context.Context) error {
	s.cache.DeleteExpired()
	return nil
}
