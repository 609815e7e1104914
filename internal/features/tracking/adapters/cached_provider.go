package adapter

import (
	"context"
	"errors"
	"time"

	"tracking-proxy/internal/core/cache"
	"tracking-proxy/internal/core/logger"
	"tracking-proxy/internal/core/metrics"
	"tracking-proxy/internal/features/tracking/domain"
	"tracking-proxy/internal/features/tracking/ports"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CacheKeyPrefix namespaces positive provider results in the cache.
const CacheKeyPrefix = "pkg:"

// CachedProvider decorates a PackageProvider with a positive-result TTL cache.
// Concurrent lookups of the same code share one upstream call.
type CachedProvider struct {
	next    ports.PackageProvider
	cache   cache.Cache
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewCachedProvider wraps next with c. m may be nil.
func NewCachedProvider(next ports.PackageProvider, c cache.Cache, ttl time.Duration, m *metrics.Metrics) *CachedProvider {
	return &CachedProvider{
		next:    next,
		cache:   c,
		ttl:     ttl,
		metrics: m,
		logger:  logger.Get(),
	}
}

// FetchOne returns the cached payload for code when live, otherwise asks the
// wrapped provider and caches a successful answer. Failures are never cached.
func (p *CachedProvider) FetchOne(ctx context.Context, code string) domain.ProviderResult {
	key := CacheKeyPrefix + code

	if payload, ok := p.lookup(ctx, key); ok {
		return domain.Success(payload)
	}

	// The shared call outlives any single caller; each caller waits on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (interface{}, error) {
		result := p.next.FetchOne(shared, code)
		if result.OK() {
			if err := p.cache.Set(shared, key, result.Payload(), p.ttl); err != nil {
				p.logger.Warn("Failed to cache provider result", zap.String("key", key), zap.Error(err))
			}
		}
		return result, nil
	})

	select {
	case res := <-ch:
		return res.Val.(domain.ProviderResult)
	case <-ctx.Done():
		return domain.Fail(domain.Failure{
			Reason:  domain.FailureTransport,
			Message: ctx.Err().Error(),
		})
	}
}

func (p *CachedProvider) lookup(ctx context.Context, key string) ([]byte, bool) {
	payload, err := p.cache.Get(ctx, key)
	switch {
	case err == nil:
		p.metrics.CacheLookup("hit")
		return payload, true
	case errors.Is(err, cache.ErrNotFound):
		p.metrics.CacheLookup("miss")
	default:
		// A broken cache backend degrades to direct provider calls.
		p.metrics.CacheLookup("error")
		p.logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
	}
	return nil, false
}
