package endpoint

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// BuildFeedRequest carries the ordered organic items to interleave. The
// items come from an external content service and stay opaque here.
type BuildFeedRequest struct {
	Items []models.OrganicItem `json:"items"`
}

// BuildFeedResponse represents the interleaved display sequence
type BuildFeedResponse struct {
	Entries  []models.FeedEntry `json:"entries"`
	Strategy string             `json:"strategy"`
	Err      error              `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r BuildFeedResponse) Failed() error { return r.Err }

// makeBuildFeedEndpoint creates the endpoint for feed interleaving
func makeBuildFeedEndpoint(s service.Interleaver) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(BuildFeedRequest)
		entries, err := s.BuildFeed(ctx, req.Items)
		return BuildFeedResponse{
			Entries:  entries,
			Strategy: service.RoundRobinPlacement,
			Err:      err,
		}, nil
	}
}

// PickPrerollRequest represents a single video playback request
type PickPrerollRequest struct{}

// PickPrerollResponse represents the pre-roll decision. With no eligible
// campaigns Preroll is nil and playback proceeds immediately. SkippableIn
// is in whole seconds, which is what skip countdowns render.
type PickPrerollResponse struct {
	Preroll     *models.Preroll `json:"preroll,omitempty"`
	SkippableIn int64           `json:"skippable_in_seconds,omitempty"`
	Strategy    string          `json:"strategy"`
	Err         error           `json:"-"`
}

// Failed implements the endpoint.Failer interface
func (r PickPrerollResponse) Failed() error { return r.Err }

// makePickPrerollEndpoint creates the endpoint for pre-roll selection
func makePickPrerollEndpoint(s service.Interleaver) endpoint.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		preroll, err := s.PickPreroll(ctx)
		resp := PickPrerollResponse{
			Preroll:  preroll,
			Strategy: service.UniformRandomPick,
			Err:      err,
		}
		if preroll != nil {
			resp.SkippableIn = int64(models.MinPrerollExposure / time.Second)
		}
		return resp, nil
	}
}
