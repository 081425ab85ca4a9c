package repository

import (
	"context"
	"sync"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// MemoryRepository implements service.CampaignRepository as an in-process
// arena of campaign records indexed by id. All mutation is routed through
// one mutex, so counter increments and lifecycle updates are atomic
// read-modify-writes and no partial update is ever observable.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*models.Campaign
	order  []int64
	clock  func() time.Time
}

// NewMemoryRepository creates an empty in-memory campaign store
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:  make(map[int64]*models.Campaign),
		clock: time.Now,
	}
}

// NewSeededMemoryRepository creates an in-memory store pre-loaded with
// sample campaigns. Used when no database is configured.
func NewSeededMemoryRepository() *MemoryRepository {
	r := NewMemoryRepository()
	ctx := context.Background()

	samples := []struct {
		name      string
		budget    int64
		imageURL  string
		targetURL string
	}{
		{"Spotify - Music for everyone", 50000, "https://somelink/spotify.png", "https://spotify.com"},
		{"Duolingo: Best way to learn", 30000, "https://somelink/duolingo.png", "https://duolingo.com"},
		{"Subway Surfer", 20000, "https://somelink/subway.png", ""},
	}
	for _, s := range samples {
		r.Create(ctx, s.name, s.budget, s.imageURL, s.targetURL)
	}
	return r
}

// WithClock replaces the creation timestamp source. Used by tests.
func (r *MemoryRepository) WithClock(clock func() time.Time) *MemoryRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = clock
	return r
}

// Create inserts a new active campaign and assigns the next monotonic id
func (r *MemoryRepository) Create(_ context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	campaign := &models.Campaign{
		ID:        r.nextID,
		Name:      name,
		Status:    models.StatusActive,
		ImageURL:  imageURL,
		TargetURL: targetURL,
		Budget:    budget,
		CreatedAt: r.clock(),
	}
	r.byID[campaign.ID] = campaign
	r.order = append(r.order, campaign.ID)
	return *campaign, nil
}

// Get returns a copy of the campaign with the given id
func (r *MemoryRepository) Get(_ context.Context, id int64) (models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaign, ok := r.byID[id]
	if !ok {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}
	return *campaign, nil
}

// List returns copies of every campaign in insertion order
func (r *MemoryRepository) List(_ context.Context) ([]models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	campaigns := make([]models.Campaign, 0, len(r.order))
	for _, id := range r.order {
		campaigns = append(campaigns, *r.byID[id])
	}
	return campaigns, nil
}

// ListActive returns copies of placement-eligible campaigns in insertion order
func (r *MemoryRepository) ListActive(_ context.Context) ([]models.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var campaigns []models.Campaign
	for _, id := range r.order {
		if c := r.byID[id]; c.IsActive() {
			campaigns = append(campaigns, *c)
		}
	}
	return campaigns, nil
}

// Update applies the mutator to one record under the write lock. The
// mutator works on a copy; a returned error discards it and the stored
// record is untouched.
func (r *MemoryRepository) Update(_ context.Context, id int64, mutate func(*models.Campaign) error) (models.Campaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.byID[id]
	if !ok {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}

	updated := *campaign
	if err := mutate(&updated); err != nil {
		return models.Campaign{}, err
	}
	// Identity is immutable once assigned.
	updated.ID = campaign.ID
	*campaign = updated
	return updated, nil
}

// IncrementImpressions adds one to the campaign impression counter
func (r *MemoryRepository) IncrementImpressions(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.byID[id]
	if !ok {
		return &models.NotFoundError{CampaignID: id}
	}
	campaign.Impressions++
	return nil
}

// IncrementClicks adds one to the campaign click counter
func (r *MemoryRepository) IncrementClicks(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	campaign, ok := r.byID[id]
	if !ok {
		return &models.NotFoundError{CampaignID: id}
	}
	campaign.Clicks++
	return nil
}

// compile-time interface check
var _ service.CampaignRepository = (*MemoryRepository)(nil)
