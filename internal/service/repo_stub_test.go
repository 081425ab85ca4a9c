package service

import (
	"context"
	"sync"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// stubRepo is a hand-rolled CampaignRepository for service tests. Each
// method can be forced to fail, and counter calls are tallied so exposure
// semantics can be asserted without a real store.
type stubRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Campaign
	order  []int64

	createErr     error
	getErr        error
	listErr       error
	listActiveErr error
	updateErr     error
	incrementErr  error

	impressionCalls map[int64]int
	clickCalls      map[int64]int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		byID:            make(map[int64]*models.Campaign),
		impressionCalls: make(map[int64]int),
		clickCalls:      make(map[int64]int),
	}
}

// seed inserts a campaign directly, bypassing Create, so tests can start
// from any status or counter state
func (r *stubRepo) seed(c models.Campaign) models.Campaign {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	} else if c.ID > r.nextID {
		r.nextID = c.ID
	}
	stored := c
	r.byID[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return stored
}

func (r *stubRepo) Create(_ context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error) {
	if r.createErr != nil {
		return models.Campaign{}, r.createErr
	}
	return r.seed(models.Campaign{
		Name:      name,
		Status:    models.StatusActive,
		ImageURL:  imageURL,
		TargetURL: targetURL,
		Budget:    budget,
		CreatedAt: time.Now(),
	}), nil
}

func (r *stubRepo) Get(_ context.Context, id int64) (models.Campaign, error) {
	if r.getErr != nil {
		return models.Campaign{}, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}
	return *c, nil
}

func (r *stubRepo) List(_ context.Context) ([]models.Campaign, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	campaigns := make([]models.Campaign, 0, len(r.order))
	for _, id := range r.order {
		campaigns = append(campaigns, *r.byID[id])
	}
	return campaigns, nil
}

func (r *stubRepo) ListActive(_ context.Context) ([]models.Campaign, error) {
	if r.listActiveErr != nil {
		return nil, r.listActiveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var campaigns []models.Campaign
	for _, id := range r.order {
		if c := r.byID[id]; c.IsActive() {
			campaigns = append(campaigns, *c)
		}
	}
	return campaigns, nil
}

func (r *stubRepo) Update(_ context.Context, id int64, mutate func(*models.Campaign) error) (models.Campaign, error) {
	if r.updateErr != nil {
		return models.Campaign{}, r.updateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return models.Campaign{}, &models.NotFoundError{CampaignID: id}
	}

	updated := *c
	if err := mutate(&updated); err != nil {
		return models.Campaign{}, err
	}
	updated.ID = c.ID
	*c = updated
	return updated, nil
}

func (r *stubRepo) IncrementImpressions(_ context.Context, id int64) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.impressionCalls[id]++
	c, ok := r.byID[id]
	if !ok {
		return &models.NotFoundError{CampaignID: id}
	}
	c.Impressions++
	return nil
}

func (r *stubRepo) IncrementClicks(_ context.Context, id int64) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.clickCalls[id]++
	c, ok := r.byID[id]
	if !ok {
		return &models.NotFoundError{CampaignID: id}
	}
	c.Clicks++
	return nil
}

// compile-time interface check
var _ CampaignRepository = (*stubRepo)(nil)

// stubInvalidator counts cache invalidations issued by the lifecycle service
type stubInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (s *stubInvalidator) InvalidateAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return nil
}
