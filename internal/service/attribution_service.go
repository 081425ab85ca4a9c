package service

import (
	"context"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// Attribution defines the interface for recording exposure events. One
// call means one event: deduplication per physical exposure is owned by
// the display surface (see models.AdSlot and models.Preroll), not here,
// because exposure state is view-local rather than campaign-global.
type Attribution interface {
	RecordImpression(ctx context.Context, campaignID int64) error
	RecordClick(ctx context.Context, campaignID int64) error
}

// AttributionService folds exposure events into campaign counters through
// the repository's atomic increment operations
type AttributionService struct {
	repository CampaignRepository
}

// NewAttributionService creates a new attribution recorder
func NewAttributionService(repo CampaignRepository) *AttributionService {
	return &AttributionService{
		repository: repo,
	}
}

// RecordImpression increments the campaign impression counter by exactly
// one. A missing campaign is a silent no-op: ad telemetry must never break
// a display surface. Impressions have no budget or spend side effects.
func (s *AttributionService) RecordImpression(ctx context.Context, campaignID int64) error {
	err := s.repository.IncrementImpressions(ctx, campaignID)
	if models.IsNotFound(err) {
		return nil
	}
	return err
}

// RecordClick increments the campaign click counter by exactly one, with
// the same no-op-on-missing-campaign policy as impressions. A click with
// no prior impression is accepted; the engine orders nothing between the
// two event kinds.
func (s *AttributionService) RecordClick(ctx context.Context, campaignID int64) error {
	err := s.repository.IncrementClicks(ctx, campaignID)
	if models.IsNotFound(err) {
		return nil
	}
	return err
}
