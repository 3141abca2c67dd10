// README: Redis-backed TTL cache in front of a cloud Source.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheKey = "cloudpicker:clouds"
	// DefaultCacheTTL matches how long the upstream list is trusted.
	DefaultCacheTTL = 10 * time.Minute
)

// CachedSource serves clouds from Redis while the cached copy is fresh and
// refills it from the wrapped Source otherwise. Redis failures are logged and
// fall through to the upstream.
type CachedSource struct {
	redis    *redis.Client
	upstream Source
	ttl      time.Duration
}

func NewCachedSource(rdb *redis.Client, upstream Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{redis: rdb, upstream: upstream, ttl: ttl}
}

func (s *CachedSource) FetchClouds(ctx context.Context) ([]Cloud, error) {
	if clouds, ok := s.cached(ctx); ok {
		return clouds, nil
	}

	clouds, err := s.upstream.FetchClouds(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(clouds)
	if err != nil {
		return nil, err
	}
	if err := s.redis.Set(ctx, cacheKey, data, s.ttl).Err(); err != nil {
		log.Printf("cloud cache: set failed: %v", err)
	}
	return clouds, nil
}

// Invalidate drops the cached list so the next fetch goes upstream.
func (s *CachedSource) Invalidate(ctx context.Context) error {
	return s.redis.Del(ctx, cacheKey).Err()
}

func (s *CachedSource) cached(ctx context.Context) ([]Cloud, bool) {
	val, err := s.redis.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Printf("cloud cache: get failed: %v", err)
		return nil, false
	}
	var clouds []Cloud
	if err := json.Unmarshal(val, &clouds); err != nil {
		log.Printf("cloud cache: dropping corrupt entry: %v", err)
		if err := s.Invalidate(ctx); err != nil {
			log.Printf("cloud cache: delete failed: %v", err)
		}
		return nil, false
	}
	return clouds, true
}
