package models

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/google/uuid"
)

// ExposureRecorder receives the impression and click events raised by
// display surfaces. The attribution service implements it.
type ExposureRecorder interface {
	RecordImpression(ctx context.Context, campaignID int64) error
	RecordClick(ctx context.Context, campaignID int64) error
}

// OrganicItem is a content item owned by an external content service. The
// interleaver treats it as opaque: only its position in the sequence
// matters for placement.
type OrganicItem struct {
	ID      int64           `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// FeedEntryKind discriminates the two kinds of feed entries
type FeedEntryKind string

// enum values for FeedEntryKind
const (
	FeedEntryPost FeedEntryKind = "post"
	FeedEntryAd   FeedEntryKind = "ad"
)

// FeedEntry is one element of an interleaved feed: either an organic item
// or a sponsored ad slot
type FeedEntry struct {
	Kind FeedEntryKind `json:"kind"`
	Post *OrganicItem  `json:"post,omitempty"`
	Ad   *AdSlot       `json:"ad,omitempty"`
}

// AdSlot is a paid entry placed into a feed. Each slot carries a unique
// token and a consumed flag so that at most one impression is recorded per
// slot exposure, no matter how many visibility signals the presentation
// layer delivers for the same render.
type AdSlot struct {
	Token    string   `json:"token"`
	Campaign Campaign `json:"campaign"`

	consumed uint32
}

// NewAdSlot creates an armed ad slot for the given campaign
func NewAdSlot(c Campaign) *AdSlot {
	return &AdSlot{
		Token:    uuid.NewString(),
		Campaign: c,
	}
}

// FireImpression records the slot impression on the first call and is a
// no-op on every call after that. The flag flips before the recorder runs,
// so concurrent visibility signals cannot double-count.
func (s *AdSlot) FireImpression(ctx context.Context, rec ExposureRecorder) error {
	if !atomic.CompareAndSwapUint32(&s.consumed, 0, 1) {
		return nil
	}
	return rec.RecordImpression(ctx, s.Campaign.ID)
}

// Consumed returns true once the slot impression has been fired
func (s *AdSlot) Consumed() bool {
	return atomic.LoadUint32(&s.consumed) == 1
}

// Click records a tap on the slot and returns the campaign target URL
// together with whether the caller should navigate to it. Clicks are not
// deduplicated: every tap is a genuine interaction.
func (s *AdSlot) Click(ctx context.Context, rec ExposureRecorder) (string, bool, error) {
	if err := rec.RecordClick(ctx, s.Campaign.ID); err != nil {
		return "", false, err
	}
	return s.Campaign.TargetURL, s.Campaign.TargetURL != "", nil
}
