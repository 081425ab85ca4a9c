package middleware

import (
	"context"

	"github.com/prajwalbharadwajbm/adweave/internal/metrics"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// attributionMetricsMiddleware implements business metrics for Attribution
type attributionMetricsMiddleware struct {
	metrics *metrics.Metrics
	next    service.Attribution
}

// NewAttributionMetricsMiddleware creates a metrics middleware for the
// attribution recorder
func NewAttributionMetricsMiddleware(m *metrics.Metrics) func(service.Attribution) service.Attribution {
	return func(next service.Attribution) service.Attribution {
		return &attributionMetricsMiddleware{
			metrics: m,
			next:    next,
		}
	}
}

// RecordImpression implements service.Attribution with business metrics
func (mw *attributionMetricsMiddleware) RecordImpression(ctx context.Context, campaignID int64) error {
	err := mw.next.RecordImpression(ctx, campaignID)
	if err != nil {
		mw.metrics.RecordImpression("dropped")
	} else {
		mw.metrics.RecordImpression("recorded")
	}
	return err
}

// RecordClick implements service.Attribution with business metrics
func (mw *attributionMetricsMiddleware) RecordClick(ctx context.Context, campaignID int64) error {
	err := mw.next.RecordClick(ctx, campaignID)
	if err != nil {
		mw.metrics.RecordClick("dropped")
	} else {
		mw.metrics.RecordClick("recorded")
	}
	return err
}

// interleaveMetricsMiddleware implements business metrics for the Interleaver
type interleaveMetricsMiddleware struct {
	metrics *metrics.Metrics
	next    service.Interleaver
}

// NewInterleaveMetricsMiddleware creates a metrics middleware for the
// interleaver
func NewInterleaveMetricsMiddleware(m *metrics.Metrics) func(service.Interleaver) service.Interleaver {
	return func(next service.Interleaver) service.Interleaver {
		return &interleaveMetricsMiddleware{
			metrics: m,
			next:    next,
		}
	}
}

// BuildFeed implements service.Interleaver with business metrics
func (mw *interleaveMetricsMiddleware) BuildFeed(ctx context.Context, organic []models.OrganicItem) ([]models.FeedEntry, error) {
	entries, err := mw.next.BuildFeed(ctx, organic)
	if err == nil {
		placed := 0
		for _, e := range entries {
			if e.Kind == models.FeedEntryAd {
				placed++
			}
		}
		mw.metrics.RecordAdSlots(placed)
	}
	return entries, err
}

// PickPreroll implements service.Interleaver with business metrics
func (mw *interleaveMetricsMiddleware) PickPreroll(ctx context.Context) (*models.Preroll, error) {
	preroll, err := mw.next.PickPreroll(ctx)
	if err == nil {
		if preroll != nil {
			mw.metrics.RecordPreroll("served")
		} else {
			mw.metrics.RecordPreroll("skipped_empty")
		}
	}
	return preroll, err
}
