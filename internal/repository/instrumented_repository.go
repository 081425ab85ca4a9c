package repository

import (
	"context"

	"github.com/prajwalbharadwajbm/adweave/internal/metrics"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// InstrumentedRepository wraps a campaign repository with Prometheus
// query/error counters
type InstrumentedRepository struct {
	next    service.CampaignRepository
	metrics *metrics.Metrics
}

// NewInstrumentedRepository creates a new instrumented repository
func NewInstrumentedRepository(repo service.CampaignRepository, metrics *metrics.Metrics) service.CampaignRepository {
	return &InstrumentedRepository{
		next:    repo,
		metrics: metrics,
	}
}

// record registers the query and, when err is a real failure, the error.
// Not-found is a domain outcome, not a storage error.
func (r *InstrumentedRepository) record(operation string, err error) {
	r.metrics.RecordDatabaseQuery(operation, "campaigns")
	if err != nil && !models.IsNotFound(err) {
		r.metrics.RecordDatabaseError(operation, "query_error")
	}
}

// Create implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) Create(ctx context.Context, name string, budget int64, imageURL, targetURL string) (campaign models.Campaign, err error) {
	defer func() { r.record("insert", err) }()
	return r.next.Create(ctx, name, budget, imageURL, targetURL)
}

// Get implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) Get(ctx context.Context, id int64) (campaign models.Campaign, err error) {
	defer func() { r.record("select", err) }()
	return r.next.Get(ctx, id)
}

// List implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) List(ctx context.Context) (campaigns []models.Campaign, err error) {
	defer func() { r.record("select", err) }()
	return r.next.List(ctx)
}

// ListActive implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) ListActive(ctx context.Context) (campaigns []models.Campaign, err error) {
	defer func() { r.record("select", err) }()
	return r.next.ListActive(ctx)
}

// Update implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) Update(ctx context.Context, id int64, mutate func(*models.Campaign) error) (campaign models.Campaign, err error) {
	defer func() { r.record("update", err) }()
	return r.next.Update(ctx, id, mutate)
}

// IncrementImpressions implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) IncrementImpressions(ctx context.Context, id int64) (err error) {
	defer func() { r.record("update", err) }()
	return r.next.IncrementImpressions(ctx, id)
}

// IncrementClicks implements service.CampaignRepository with metrics
func (r *InstrumentedRepository) IncrementClicks(ctx context.Context, id int64) (err error) {
	defer func() { r.record("update", err) }()
	return r.next.IncrementClicks(ctx, id)
}
