package service

import (
	"context"
	"strings"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// CampaignLifecycle defines the interface for campaign creation and status
// management. It is the only path through which campaign attributes other
// than the attribution counters may change.
type CampaignLifecycle interface {
	CreateCampaign(ctx context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error)
	GetCampaign(ctx context.Context, id int64) (models.Campaign, error)
	ListCampaigns(ctx context.Context) ([]models.Campaign, error)
	UpdateCampaignStatus(ctx context.Context, id int64, status models.CampaignStatus) (models.Campaign, error)
}

// CampaignService enforces the campaign state machine on top of the
// repository's atomic update contract
type CampaignService struct {
	repository CampaignRepository
	cache      CacheInvalidator
}

// NewCampaignService creates a new lifecycle service. The invalidator may
// be nil when no cache is configured.
func NewCampaignService(repo CampaignRepository, cache CacheInvalidator) *CampaignService {
	return &CampaignService{
		repository: repo,
		cache:      cache,
	}
}

// CreateCampaign validates the request and inserts a new campaign in the
// active state. Validation happens before any state mutation.
func (s *CampaignService) CreateCampaign(ctx context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return models.Campaign{}, &models.ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if budget < 0 {
		return models.Campaign{}, &models.ValidationError{Field: "budget", Reason: "must not be negative"}
	}

	campaign, err := s.repository.Create(ctx, name, budget, imageURL, targetURL)
	if err != nil {
		return models.Campaign{}, err
	}

	// A freshly created campaign is active and immediately eligible.
	s.invalidate(ctx)
	return campaign, nil
}

// GetCampaign returns a single campaign by id
func (s *CampaignService) GetCampaign(ctx context.Context, id int64) (models.Campaign, error) {
	return s.repository.Get(ctx, id)
}

// ListCampaigns returns every campaign regardless of status, in insertion
// order. Completed campaigns are never destroyed and stay queryable for
// historical reporting.
func (s *CampaignService) ListCampaigns(ctx context.Context) ([]models.Campaign, error) {
	return s.repository.List(ctx)
}

// UpdateCampaignStatus applies a lifecycle transition. The transition
// check runs inside the repository's atomic update, so a concurrent
// transition cannot slip between the read and the write. Illegal
// transitions fail with InvalidTransitionError and leave the campaign
// unchanged.
func (s *CampaignService) UpdateCampaignStatus(ctx context.Context, id int64, status models.CampaignStatus) (models.Campaign, error) {
	if !status.Valid() {
		return models.Campaign{}, &models.ValidationError{Field: "status", Reason: "unknown status " + string(status)}
	}

	campaign, err := s.repository.Update(ctx, id, func(c *models.Campaign) error {
		if !c.Status.CanTransitionTo(status) {
			return &models.InvalidTransitionError{From: c.Status, To: status}
		}
		c.Status = status
		return nil
	})
	if err != nil {
		return models.Campaign{}, err
	}

	s.invalidate(ctx)
	return campaign, nil
}

// invalidate drops the cached eligible set after an eligibility change
func (s *CampaignService) invalidate(ctx context.Context) {
	if s.cache != nil {
		// Best effort: a stale eligible set is acceptable, a failed
		// invalidation must not fail the lifecycle operation.
		_ = s.cache.InvalidateAll(ctx)
	}
}
