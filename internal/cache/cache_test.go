package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

func newMemoryOnlyCache(t *testing.T) *HybridCache {
	t.Helper()
	hc, err := NewHybridCache(Config{
		DefaultTTL:   time.Minute,
		EnableMemory: true,
	})
	require.NoError(t, err)
	return hc
}

func activeSet(names ...string) []models.Campaign {
	campaigns := make([]models.Campaign, 0, len(names))
	for i, name := range names {
		campaigns = append(campaigns, models.Campaign{
			ID:     int64(i + 1),
			Name:   name,
			Status: models.StatusActive,
		})
	}
	return campaigns
}

func TestHybridCache_MissOnEmpty(t *testing.T) {
	hc := newMemoryOnlyCache(t)

	_, err := hc.GetActiveCampaigns(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestHybridCache_SetThenGet(t *testing.T) {
	hc := newMemoryOnlyCache(t)
	ctx := context.Background()
	campaigns := activeSet("Spotify", "Duolingo")

	require.NoError(t, hc.SetActiveCampaigns(ctx, campaigns, time.Minute))

	got, err := hc.GetActiveCampaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, campaigns, got)
}

func TestHybridCache_GetReturnsCopy(t *testing.T) {
	hc := newMemoryOnlyCache(t)
	ctx := context.Background()

	require.NoError(t, hc.SetActiveCampaigns(ctx, activeSet("Spotify"), time.Minute))

	first, err := hc.GetActiveCampaigns(ctx)
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := hc.GetActiveCampaigns(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Spotify", second[0].Name)
}

func TestHybridCache_TTLExpiry(t *testing.T) {
	hc := newMemoryOnlyCache(t)
	ctx := context.Background()

	require.NoError(t, hc.SetActiveCampaigns(ctx, activeSet("Spotify"), 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := hc.GetActiveCampaigns(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestHybridCache_InvalidateAll(t *testing.T) {
	hc := newMemoryOnlyCache(t)
	ctx := context.Background()

	require.NoError(t, hc.SetActiveCampaigns(ctx, activeSet("Spotify"), time.Minute))
	require.NoError(t, hc.InvalidateAll(ctx))

	_, err := hc.GetActiveCampaigns(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestHybridCache_Stats(t *testing.T) {
	hc := newMemoryOnlyCache(t)
	ctx := context.Background()

	_, _ = hc.GetActiveCampaigns(ctx)
	require.NoError(t, hc.SetActiveCampaigns(ctx, activeSet("Spotify"), time.Minute))
	_, _ = hc.GetActiveCampaigns(ctx)
	_, _ = hc.GetActiveCampaigns(ctx)

	stats := hc.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(3), stats.TotalOps)
	assert.InDelta(t, 2.0/3.0, stats.HitRatio, 1e-9)
}

func TestHybridCache_ShutdownWithoutRedis(t *testing.T) {
	hc := newMemoryOnlyCache(t)

	// With no Redis layer the listener has nothing to subscribe to and
	// returns immediately, and Close has nothing to release.
	assert.NoError(t, hc.StartInvalidationListener(context.Background()))
	assert.NoError(t, hc.Close())
}

func TestHybridCache_DisabledLayersAlwaysMiss(t *testing.T) {
	hc, err := NewHybridCache(Config{DefaultTTL: time.Minute})
	require.NoError(t, err)
	ctx := context.Background()

	// With no layers enabled Set is a no-op and Get always misses.
	require.NoError(t, hc.SetActiveCampaigns(ctx, activeSet("Spotify"), time.Minute))
	_, err = hc.GetActiveCampaigns(ctx)
	assert.ErrorIs(t, err, ErrCacheMiss)
}
