package service

import (
	"context"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// CampaignRepository is the persistence contract for campaign records. It
// is declared here, next to its consumers, so storage implementations
// depend on the service package and not the other way around.
//
// Implementations must apply every mutation as an atomic read-modify-write
// against a single record: two concurrent increments on the same counter
// must both be durably reflected, and no partial update may be observable
// mid-mutation.
type CampaignRepository interface {
	// Create inserts a new campaign in the active state and assigns it a
	// collision-free, monotonically increasing id.
	Create(ctx context.Context, name string, budget int64, imageURL, targetURL string) (models.Campaign, error)

	// Get returns the campaign with the given id or a NotFoundError.
	Get(ctx context.Context, id int64) (models.Campaign, error)

	// List returns every campaign, all statuses, in insertion order.
	List(ctx context.Context) ([]models.Campaign, error)

	// ListActive returns campaigns eligible for placement, insertion order.
	ListActive(ctx context.Context) ([]models.Campaign, error)

	// Update applies a single atomic mutation to one campaign record. The
	// mutator runs with the record locked; returning an error aborts the
	// update and leaves the record untouched.
	Update(ctx context.Context, id int64, mutate func(*models.Campaign) error) (models.Campaign, error)

	// IncrementImpressions adds exactly one to the campaign impression
	// counter. Returns NotFoundError for unknown ids.
	IncrementImpressions(ctx context.Context, id int64) error

	// IncrementClicks adds exactly one to the campaign click counter.
	// Returns NotFoundError for unknown ids.
	IncrementClicks(ctx context.Context, id int64) error
}

// CacheInvalidator drops any cached view of the campaign set. Lifecycle
// operations call it after mutations that change placement eligibility.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}
