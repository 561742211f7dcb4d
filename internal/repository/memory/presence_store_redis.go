package memory

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPresenceStore shares typing presence across instances. Redis expires
// entries server-side, so Sweep is a no-op here.
type RedisPresenceStore struct {
	rdb      *redis.Client
	entryTTL time.Duration
}

func NewRedisPresenceStore(rdb *redis.Client, entryTTL time.Duration) *RedisPresenceStore {
	return &RedisPresenceStore{
		rdb:      rdb,
		entryTTL: entryTTL,
	}
}

func (s *RedisPresenceStore) Set(ctx context.Context, sessionId, role string, at time.Time) error {
	return s.rdb.Set(ctx, "typing:"+presenceKey(sessionId, role), at.UnixMilli(), s.entryTTL).Err()
}

func (s *RedisPresenceStore) Clear(ctx context.Context, sessionId, role string) error {
	return s.rdb.Del(ctx, "typing:"+presenceKey(sessionId, role)).Err()
}

func (s *RedisPresenceStore) Get(ctx context.Context, sessionId, role string) (time.Time, bool, error) {
	ms, err := s.rdb.Get(ctx, "typing:"+presenceKey(sessionId, role)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	return time.UnixMilli(ms), true, nil
}

func (s *RedisPresenceStore) Sweep(ctx context.Context) error {
	return nil
}
