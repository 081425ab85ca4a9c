package endpoint

import (
	"github.com/go-kit/kit/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// Endpoints holds all endpoints for the attribution engine
type Endpoints struct {
	CreateCampaignEndpoint   endpoint.Endpoint
	GetCampaignEndpoint      endpoint.Endpoint
	ListCampaignsEndpoint    endpoint.Endpoint
	UpdateStatusEndpoint     endpoint.Endpoint
	RecordImpressionEndpoint endpoint.Endpoint
	RecordClickEndpoint      endpoint.Endpoint
	RevenueStatsEndpoint     endpoint.Endpoint
	BuildFeedEndpoint        endpoint.Endpoint
	PickPrerollEndpoint      endpoint.Endpoint
}

// MakeEndpoints wires every service into its endpoint
func MakeEndpoints(
	lifecycle service.CampaignLifecycle,
	attribution service.Attribution,
	revenue service.Revenue,
	interleaver service.Interleaver,
) Endpoints {
	return Endpoints{
		CreateCampaignEndpoint:   makeCreateCampaignEndpoint(lifecycle),
		GetCampaignEndpoint:      makeGetCampaignEndpoint(lifecycle),
		ListCampaignsEndpoint:    makeListCampaignsEndpoint(lifecycle),
		UpdateStatusEndpoint:     makeUpdateStatusEndpoint(lifecycle),
		RecordImpressionEndpoint: makeRecordImpressionEndpoint(attribution),
		RecordClickEndpoint:      makeRecordClickEndpoint(attribution),
		RevenueStatsEndpoint:     makeRevenueStatsEndpoint(revenue),
		BuildFeedEndpoint:        makeBuildFeedEndpoint(interleaver),
		PickPrerollEndpoint:      makePickPrerollEndpoint(interleaver),
	}
}
