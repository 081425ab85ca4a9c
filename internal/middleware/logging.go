package middleware

import (
	"context"
	"time"

	"github.com/go-kit/log"

	reqcontext "github.com/prajwalbharadwajbm/adweave/internal/context"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// lifecycleLoggingMiddleware implements logging for CampaignLifecycle
type lifecycleLoggingMiddleware struct {
	logger log.Logger
	next   service.CampaignLifecycle
}

// NewLifecycleLoggingMiddleware creates a logging middleware for the
// campaign lifecycle service
func NewLifecycleLoggingMiddleware(logger log.Logger) func(service.CampaignLifecycle) service.CampaignLifecycle {
	return func(next service.CampaignLifecycle) service.CampaignLifecycle {
		return &lifecycleLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

// logCall emits one logfmt line per operation
func (mw *lifecycleLoggingMiddleware) logCall(ctx context.Context, begin time.Time, method string, fields []any, err error) {
	logFields := []any{
		"method", method,
		"request_id", reqcontext.GetRequestID(ctx),
		"took", time.Since(begin),
	}
	logFields = append(logFields, fields...)
	if err != nil {
		logFields = append(logFields, "error", err.Error(), "success", false)
	} else {
		logFields = append(logFields, "success", true)
	}
	mw.logger.Log(logFields...)
}

// CreateCampaign implements service.CampaignLifecycle with logging
func (mw *lifecycleLoggingMiddleware) CreateCampaign(ctx context.Context, name string, budget int64, imageURL, targetURL string) (campaign models.Campaign, err error) {
	defer func(begin time.Time) {
		mw.logCall(ctx, begin, "CreateCampaign", []any{"name", name, "budget", budget, "campaign_id", campaign.ID}, err)
	}(time.Now())

	return mw.next.CreateCampaign(ctx, name, budget, imageURL, targetURL)
}

// GetCampaign implements service.CampaignLifecycle with logging
func (mw *lifecycleLoggingMiddleware) GetCampaign(ctx context.Context, id int64) (campaign models.Campaign, err error) {
	defer func(begin time.Time) {
		mw.logCall(ctx, begin, "GetCampaign", []any{"campaign_id", id}, err)
	}(time.Now())

	return mw.next.GetCampaign(ctx, id)
}

// ListCampaigns implements service.CampaignLifecycle with logging
func (mw *lifecycleLoggingMiddleware) ListCampaigns(ctx context.Context) (campaigns []models.Campaign, err error) {
	defer func(begin time.Time) {
		mw.logCall(ctx, begin, "ListCampaigns", []any{"campaigns_count", len(campaigns)}, err)
	}(time.Now())

	return mw.next.ListCampaigns(ctx)
}

// UpdateCampaignStatus implements service.CampaignLifecycle with logging
func (mw *lifecycleLoggingMiddleware) UpdateCampaignStatus(ctx context.Context, id int64, status models.CampaignStatus) (campaign models.Campaign, err error) {
	defer func(begin time.Time) {
		mw.logCall(ctx, begin, "UpdateCampaignStatus", []any{"campaign_id", id, "status", status}, err)
	}(time.Now())

	return mw.next.UpdateCampaignStatus(ctx, id, status)
}

// attributionLoggingMiddleware implements logging for Attribution. Exposure
// events are high volume, so it logs at the same terse shape but only
// carries the campaign id.
type attributionLoggingMiddleware struct {
	logger log.Logger
	next   service.Attribution
}

// NewAttributionLoggingMiddleware creates a logging middleware for the
// attribution recorder
func NewAttributionLoggingMiddleware(logger log.Logger) func(service.Attribution) service.Attribution {
	return func(next service.Attribution) service.Attribution {
		return &attributionLoggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

// RecordImpression implements service.Attribution with logging
func (mw *attributionLoggingMiddleware) RecordImpression(ctx context.Context, campaignID int64) (err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "RecordImpression",
			"request_id", reqcontext.GetRequestID(ctx),
			"campaign_id", campaignID,
			"took", time.Since(begin),
			"success", err == nil,
		)
	}(time.Now())

	return mw.next.RecordImpression(ctx, campaignID)
}

// RecordClick implements service.Attribution with logging
func (mw *attributionLoggingMiddleware) RecordClick(ctx context.Context, campaignID int64) (err error) {
	defer func(begin time.Time) {
		mw.logger.Log(
			"method", "RecordClick",
			"request_id", reqcontext.GetRequestID(ctx),
			"campaign_id", campaignID,
			"took", time.Since(begin),
			"success", err == nil,
		)
	}(time.Now())

	return mw.next.RecordClick(ctx, campaignID)
}
