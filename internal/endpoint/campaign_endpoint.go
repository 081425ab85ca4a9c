package endpoint

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// CreateCampaignRequest represents the request for creating a campaign
type CreateCampaignRequest struct {
	Name      string `json:"name"`
	Budget    int64  `json:"budget"`
	ImageURL  string `json:"image_url"`
	TargetURL string `json:"target_url"`
}

// CreateCampaignResponse represents the response for creating a campaign
type CreateCampaignResponse struct {
	Campaign models.Campaign `json:"campaign"`
	Err      error           `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r CreateCampaignResponse) Failed() error { return r.Err }

// makeCreateCampaignEndpoint creates the endpoint for campaign creation
func makeCreateCampaignEndpoint(s service.CampaignLifecycle) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(CreateCampaignRequest)
		campaign, err := s.CreateCampaign(ctx, req.Name, req.Budget, req.ImageURL, req.TargetURL)
		return CreateCampaignResponse{Campaign: campaign, Err: err}, nil
	}
}

// GetCampaignRequest represents the request for reading one campaign
type GetCampaignRequest struct {
	ID int64
}

// GetCampaignResponse represents the response for reading one campaign
type GetCampaignResponse struct {
	Campaign models.Campaign `json:"campaign"`
	Err      error           `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r GetCampaignResponse) Failed() error { return r.Err }

// makeGetCampaignEndpoint creates the endpoint for reading one campaign
func makeGetCampaignEndpoint(s service.CampaignLifecycle) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(GetCampaignRequest)
		campaign, err := s.GetCampaign(ctx, req.ID)
		return GetCampaignResponse{Campaign: campaign, Err: err}, nil
	}
}

// ListCampaignsRequest represents the request for listing campaigns
type ListCampaignsRequest struct{}

// ListCampaignsResponse represents the response for listing campaigns
type ListCampaignsResponse struct {
	Campaigns []models.Campaign `json:"campaigns"`
	Err       error             `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r ListCampaignsResponse) Failed() error { return r.Err }

// makeListCampaignsEndpoint creates the endpoint for listing campaigns
func makeListCampaignsEndpoint(s service.CampaignLifecycle) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		campaigns, err := s.ListCampaigns(ctx)
		return ListCampaignsResponse{Campaigns: campaigns, Err: err}, nil
	}
}

// UpdateStatusRequest represents the request for a lifecycle transition
type UpdateStatusRequest struct {
	ID     int64                 `json:"-"`
	Status models.CampaignStatus `json:"status"`
}

// UpdateStatusResponse represents the response for a lifecycle transition
type UpdateStatusResponse struct {
	Campaign models.Campaign `json:"campaign"`
	Err      error           `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r UpdateStatusResponse) Failed() error { return r.Err }

// makeUpdateStatusEndpoint creates the endpoint for lifecycle transitions
func makeUpdateStatusEndpoint(s service.CampaignLifecycle) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(UpdateStatusRequest)
		campaign, err := s.UpdateCampaignStatus(ctx, req.ID, req.Status)
		return UpdateStatusResponse{Campaign: campaign, Err: err}, nil
	}
}
