package service

import (
	"context"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// Revenue defines the interface for cross-campaign KPI aggregation
type Revenue interface {
	GetRevenueStats(ctx context.Context) (models.RevenueStats, error)
}

// RevenueService computes revenue KPIs by folding over the campaign store
type RevenueService struct {
	repository CampaignRepository
}

// NewRevenueService creates a new revenue aggregator
func NewRevenueService(repo CampaignRepository) *RevenueService {
	return &RevenueService{
		repository: repo,
	}
}

// GetRevenueStats folds every campaign, all statuses included, into a
// snapshot of total impressions, clicks, revenue and overall CTR. It is a
// pure function of the store at call time; nothing is cached, so the
// latest committed counters are always reflected.
func (s *RevenueService) GetRevenueStats(ctx context.Context) (models.RevenueStats, error) {
	campaigns, err := s.repository.List(ctx)
	if err != nil {
		return models.RevenueStats{}, err
	}

	var stats models.RevenueStats
	for _, c := range campaigns {
		stats.Fold(c)
	}
	stats.Finalize()
	return stats, nil
}
