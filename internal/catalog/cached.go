package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ytdl-ng/ytdl-web/internal/constants"
	"github.com/ytdl-ng/ytdl-web/internal/logger"
)

type Cache interface {
	GetCache(ctx context.Context, key string) ([]byte, error)
	SetCache(ctx context.Context, key string, data []byte, ttl time.Duration) error
	DeleteCache(ctx context.Context, key string) error
}

// CachedProvider serves profile listings from cache while they are fresh.
// Failed listings are never cached. A zero TTL disables caching.
type CachedProvider struct {
	provider Provider
	cache    Cache
	cacheTTL time.Duration
	logger   *logger.Logger
}

func NewCachedProvider(provider Provider, cache Cache, cacheTTL time.Duration, log *logger.Logger) *CachedProvider {
	if log == nil {
		log = logger.Default()
	}
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log.WithComponent("catalog"),
	}
}

func (c *CachedProvider) ListProfiles(ctx context.Context) ([]string, error) {
	if c.cacheTTL <= 0 || c.cache == nil {
		return c.provider.ListProfiles(ctx)
	}

	data, err := c.cache.GetCache(ctx, constants.CacheKeyProfiles)
	if err != nil {
		c.logger.Warn("Profile cache read failed", "error", err)
	} else if data != nil {
		var profiles []string
		if err := json.Unmarshal(data, &profiles); err == nil {
			return profiles, nil
		}
	}

	profiles, err := c.provider.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(profiles); err == nil {
		if err := c.cache.SetCache(ctx, constants.CacheKeyProfiles, data, c.cacheTTL); err != nil {
			c.logger.Warn("Profile cache write failed", "error", err)
		}
	}

	return profiles, nil
}

// Invalidate drops the cached listing so the next call asks the tool again.
func (c *CachedProvider) Invalidate(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.DeleteCache(ctx, constants.CacheKeyProfiles)
}
