package cache

import (
	"sync"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// memoryCache holds the active-campaign set in process with a TTL. The
// set is one small slice, so there is nothing to evict beyond expiry.
type memoryCache struct {
	mu        sync.RWMutex
	campaigns []models.Campaign
	populated bool
	expiresAt time.Time
}

// newMemoryCache creates a new in-memory cache
func newMemoryCache() *memoryCache {
	return &memoryCache{}
}

// getActiveCampaigns retrieves the cached active set if present and fresh
func (mc *memoryCache) getActiveCampaigns() ([]models.Campaign, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if !mc.populated || time.Now().After(mc.expiresAt) {
		return nil, false
	}

	campaigns := make([]models.Campaign, len(mc.campaigns))
	copy(campaigns, mc.campaigns)
	return campaigns, true
}

// setActiveCampaigns stores the active set with the given TTL
func (mc *memoryCache) setActiveCampaigns(campaigns []models.Campaign, ttl time.Duration) {
	stored := make([]models.Campaign, len(campaigns))
	copy(stored, campaigns)

	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.campaigns = stored
	mc.populated = true
	mc.expiresAt = time.Now().Add(ttl)
}

// clear drops the cached set
func (mc *memoryCache) clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.campaigns = nil
	mc.populated = false
}
