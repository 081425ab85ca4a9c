package cache

import (
	"context"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// CachedRepository decorates a campaign repository with a read-through
// cache of the active set. Only ListActive is cached: it is the hot path
// the interleaver hits on every feed build and pre-roll pick, and a stale
// read there is explicitly acceptable. Everything else passes through.
type CachedRepository struct {
	repo  service.CampaignRepository
	cache Cache
	ttl   time.Duration
}

// NewCachedRepository creates a new cached repository
func NewCachedRepository(repo service.CampaignRepository, cache Cache, ttl time.Duration) *CachedRepository {
	return &CachedRepository{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
	}
}

// ListActive retrieves the eligible set from cache first, then the store
func (cr *CachedRepository) ListActive(ctx context.Context) ([]models.Campaign, error) {
	campaigns, err := cr.cache.GetActiveCampaigns(ctx)
	if err == nil {
		return campaigns, nil
	}

	campaigns, err = cr.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	// Warm the cache for the next render. Best effort: a store failure
	// here must not fail the read.
	_ = cr.cache.SetActiveCampaigns(ctx, campaigns, cr.ttl)

	return campaigns, nil
}

// InvalidateAll drops the cached eligible set
func (cr *CachedRepository) InvalidateAll(ctx context.Context) error {
	return cr.cache.InvalidateAll(ctx)
}

// Create passes through and invalidates: a new campaign is immediately eligible
func (cr *CachedRepository) Create(ctx context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error) {
	campaign, err := cr.repo.Create(ctx, name, budget, imageURL, targetURL)
	if err == nil {
		_ = cr.cache.InvalidateAll(ctx)
	}
	return campaign, err
}

// Get passes through to the underlying repository
func (cr *CachedRepository) Get(ctx context.Context, id int64) (models.Campaign, error) {
	return cr.repo.Get(ctx, id)
}

// List passes through: aggregation must see the latest committed counters
func (cr *CachedRepository) List(ctx context.Context) ([]models.Campaign, error) {
	return cr.repo.List(ctx)
}

// Update passes through and invalidates: status changes alter eligibility
func (cr *CachedRepository) Update(ctx context.Context, id int64, mutate func(*models.Campaign) error) (models.Campaign, error) {
	campaign, err := cr.repo.Update(ctx, id, mutate)
	if err == nil {
		_ = cr.cache.InvalidateAll(ctx)
	}
	return campaign, err
}

// IncrementImpressions passes through. Counter bumps do not change
// eligibility, so the cached set stays valid.
func (cr *CachedRepository) IncrementImpressions(ctx context.Context, id int64) error {
	return cr.repo.IncrementImpressions(ctx, id)
}

// IncrementClicks passes through, same as impressions
func (cr *CachedRepository) IncrementClicks(ctx context.Context, id int64) error {
	return cr.repo.IncrementClicks(ctx, id)
}

// compile-time interface checks
var (
	_ service.CampaignRepository = (*CachedRepository)(nil)
	_ service.CacheInvalidator   = (*CachedRepository)(nil)
)
