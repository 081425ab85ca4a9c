package endpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// RecordExposureRequest represents an impression or click event for a
// campaign. The same shape serves both endpoints.
type RecordExposureRequest struct {
	CampaignID int64
}

// RecordExposureResponse represents the response for exposure recording.
// Attribution is fire-and-forget, so the only error ever carried here is
// an internal storage failure, and the transport still answers 202.
type RecordExposureResponse struct {
	Err error `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r RecordExposureResponse) Failed() error { return r.Err }

// makeRecordImpressionEndpoint creates the endpoint for impression events
func makeRecordImpressionEndpoint(s service.Attribution) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(RecordExposureRequest)
		err := s.RecordImpression(ctx, req.CampaignID)
		return RecordExposureResponse{Err: err}, nil
	}
}

// makeRecordClickEndpoint creates the endpoint for click events
func makeRecordClickEndpoint(s service.Attribution) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(RecordExposureRequest)
		err := s.RecordClick(ctx, req.CampaignID)
		return RecordExposureResponse{Err: err}, nil
	}
}

// RevenueStatsRequest represents the request for the revenue snapshot
type RevenueStatsRequest struct{}

// RevenueStatsResponse represents the revenue snapshot response
type RevenueStatsResponse struct {
	Stats models.RevenueStats `json:"stats"`
	Err   error               `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r RevenueStatsResponse) Failed() error { return r.Err }

// makeRevenueStatsEndpoint creates the endpoint for revenue aggregation
func makeRevenueStatsEndpoint(s service.Revenue) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		stats, err := s.GetRevenueStats(ctx)
		return RevenueStatsResponse{Stats: stats, Err: err}, nil
	}
}
