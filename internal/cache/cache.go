package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// ErrCacheMiss is returned when the requested entry is absent from every
// cache layer
var ErrCacheMiss = errors.New("cache miss")

// Cache defines the interface for the eligible-campaign set cache. The
// interleaver reads the active set on every feed build and pre-roll pick,
// so keeping it hot avoids a store round trip per render.
type Cache interface {
	GetActiveCampaigns(ctx context.Context) ([]models.Campaign, error)
	SetActiveCampaigns(ctx context.Context, campaigns []models.Campaign, ttl time.Duration) error
	InvalidateAll(ctx context.Context) error
	GetStats() Stats
}

// Stats holds cache performance statistics
type Stats struct {
	Hits        int64
	Misses      int64
	Errors      int64
	HitRatio    float64
	TotalOps    int64
	LastUpdated time.Time
}

// Config holds cache configuration
type Config struct {
	DefaultTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EnableMemory  bool
	EnableRedis   bool
}

// HybridCache layers an in-process cache over a shared Redis cache.
// Reads try memory first, then Redis, warming memory on a Redis hit.
// Invalidations clear both and fan out to other instances over pub/sub.
type HybridCache struct {
	memoryCache *memoryCache
	redisCache  *redisCache
	config      Config

	stats Stats
	mu    sync.RWMutex
}

// NewHybridCache creates a new hybrid cache
func NewHybridCache(config Config) (*HybridCache, error) {
	hc := &HybridCache{
		config: config,
		stats: Stats{
			LastUpdated: time.Now(),
		},
	}

	if config.EnableMemory {
		hc.memoryCache = newMemoryCache()
	}

	if config.EnableRedis {
		var err error
		hc.redisCache, err = newRedisCache(config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
	}

	return hc, nil
}

// GetActiveCampaigns retrieves the eligible set (memory first, then Redis,
// then miss)
func (hc *HybridCache) GetActiveCampaigns(ctx context.Context) ([]models.Campaign, error) {
	if hc.memoryCache != nil {
		if campaigns, found := hc.memoryCache.getActiveCampaigns(); found {
			hc.recordHit()
			return campaigns, nil
		}
	}

	if hc.redisCache != nil {
		campaigns, err := hc.redisCache.getActiveCampaigns(ctx)
		if err == nil {
			hc.recordHit()
			// Warm memory cache
			if hc.memoryCache != nil {
				hc.memoryCache.setActiveCampaigns(campaigns, hc.config.DefaultTTL)
			}
			return campaigns, nil
		}
	}

	hc.recordMiss()
	return nil, ErrCacheMiss
}

// SetActiveCampaigns stores the eligible set in both cache layers
func (hc *HybridCache) SetActiveCampaigns(ctx context.Context, campaigns []models.Campaign, ttl time.Duration) error {
	if hc.memoryCache != nil {
		hc.memoryCache.setActiveCampaigns(campaigns, ttl)
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.setActiveCampaigns(ctx, campaigns, ttl); err != nil {
			hc.recordError()
			return fmt.Errorf("cache store error: %w", err)
		}
	}

	return nil
}

// InvalidateAll clears both layers and broadcasts the invalidation so
// other instances drop their in-process copies too
func (hc *HybridCache) InvalidateAll(ctx context.Context) error {
	if hc.memoryCache != nil {
		hc.memoryCache.clear()
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.clear(ctx); err != nil {
			hc.recordError()
			return fmt.Errorf("cache invalidation error: %w", err)
		}
		if err := hc.redisCache.publishInvalidation(ctx); err != nil {
			// Broadcast failure only delays remote instances until their TTL.
			hc.recordError()
		}
	}

	return nil
}

// StartInvalidationListener subscribes to remote invalidation events and
// clears the in-process layer when one arrives. Blocks until ctx is done,
// so callers run it in its own goroutine.
func (hc *HybridCache) StartInvalidationListener(ctx context.Context) error {
	if hc.redisCache == nil || hc.memoryCache == nil {
		return nil
	}
	return hc.redisCache.subscribeInvalidation(ctx, func(string) {
		hc.memoryCache.clear()
	})
}

// GetStats returns current cache statistics
func (hc *HybridCache) GetStats() Stats {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	stats := hc.stats
	if stats.TotalOps > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(stats.TotalOps)
	}
	return stats
}

// Close releases cache resources
func (hc *HybridCache) Close() error {
	if hc.redisCache != nil {
		return hc.redisCache.close()
	}
	return nil
}

func (hc *HybridCache) recordHit() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.stats.Hits++
	hc.stats.TotalOps++
	hc.stats.LastUpdated = time.Now()
}

func (hc *HybridCache) recordMiss() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.stats.Misses++
	hc.stats.TotalOps++
	hc.stats.LastUpdated = time.Now()
}

func (hc *HybridCache) recordError() {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.stats.Errors++
	hc.stats.TotalOps++
	hc.stats.LastUpdated = time.Now()
}
