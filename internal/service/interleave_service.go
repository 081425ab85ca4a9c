package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// Placement strategy names. Feed slots and pre-roll picks are two distinct
// policies with different determinism guarantees, so they stay separate
// rather than hiding behind one selector abstraction.
const (
	// RoundRobinPlacement cycles eligible campaigns by feed block number,
	// giving reproducible placement for a fixed campaign list and feed.
	RoundRobinPlacement = "round_robin"
	// UniformRandomPick draws one pre-roll candidate per playback request.
	UniformRandomPick = "uniform_random"
)

// adSlotInterval is the organic-item period between feed ad slots: one
// slot after every 4th organic item.
const adSlotInterval = 4

// Interleaver defines the interface for mixing paid content into organic
// surfaces
type Interleaver interface {
	BuildFeed(ctx context.Context, organic []models.OrganicItem) ([]models.FeedEntry, error)
	PickPreroll(ctx context.Context) (*models.Preroll, error)
}

// InterleaveService decides where paid content lands in organic feeds and
// which campaign fronts a video playback. Eligibility is always
// status == active, read through the repository (typically the cached
// decorator).
type InterleaveService struct {
	repository CampaignRepository

	mu  sync.Mutex
	rng *rand.Rand
}

// NewInterleaveService creates a new interleaver with a time-seeded
// random source for pre-roll picks
func NewInterleaveService(repo CampaignRepository) *InterleaveService {
	return NewInterleaveServiceWithRand(repo, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewInterleaveServiceWithRand creates an interleaver with an explicit
// random source so tests can pin the pre-roll pick
func NewInterleaveServiceWithRand(repo CampaignRepository, rng *rand.Rand) *InterleaveService {
	return &InterleaveService{
		repository: repo,
		rng:        rng,
	}
}

// BuildFeed interleaves ad slots into the organic sequence using
// round-robin placement: after every 4th organic item (1-indexed), the
// slot for block k carries eligible[k mod len(eligible)]. With no eligible
// campaigns the organic sequence comes back unchanged. No slot is placed
// before the first full block or after a trailing partial one.
func (s *InterleaveService) BuildFeed(ctx context.Context, organic []models.OrganicItem) ([]models.FeedEntry, error) {
	eligible, err := s.repository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]models.FeedEntry, 0, len(organic)+len(organic)/adSlotInterval)
	for i := range organic {
		item := organic[i]
		entries = append(entries, models.FeedEntry{Kind: models.FeedEntryPost, Post: &item})

		if (i+1)%adSlotInterval == 0 && len(eligible) > 0 {
			block := i / adSlotInterval
			campaign := eligible[block%len(eligible)]
			entries = append(entries, models.FeedEntry{Kind: models.FeedEntryAd, Ad: models.NewAdSlot(campaign)})
		}
	}
	return entries, nil
}

// PickPreroll selects one pre-roll candidate uniformly at random from the
// eligible campaigns. The pick is per playback request and never cached
// across requests. A nil session with nil error means no pre-roll: the
// caller starts playback immediately.
func (s *InterleaveService) PickPreroll(ctx context.Context) (*models.Preroll, error) {
	eligible, err := s.repository.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(eligible))
	s.mu.Unlock()

	return models.NewPreroll(eligible[idx]), nil
}
