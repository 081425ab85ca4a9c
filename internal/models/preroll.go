package models

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MinPrerollExposure is how long skip stays disabled after a pre-roll is
// first presented.
const MinPrerollExposure = 3 * time.Second

// Preroll is a single pre-roll session for one video playback request.
// The candidate campaign is picked per request and never reused across
// playbacks. Exactly one impression is recorded when the pre-roll is first
// presented; skipping does not repeat it.
type Preroll struct {
	Token    string   `json:"token"`
	Campaign Campaign `json:"campaign"`

	mu          sync.Mutex
	now         func() time.Time
	presentedAt time.Time
	fired       bool
	dismissed   bool
}

// NewPreroll creates a pre-roll session for the given campaign
func NewPreroll(c Campaign) *Preroll {
	return &Preroll{
		Token:    uuid.NewString(),
		Campaign: c,
		now:      time.Now,
	}
}

// WithClock replaces the session clock. Used by tests to control the skip
// window.
func (p *Preroll) WithClock(now func() time.Time) *Preroll {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.now = now
	return p
}

// Present marks the pre-roll as shown and records its single impression.
// Calling Present again is a no-op: the impression fires once per session.
func (p *Preroll) Present(ctx context.Context, rec ExposureRecorder) error {
	p.mu.Lock()
	if p.fired {
		p.mu.Unlock()
		return nil
	}
	p.fired = true
	p.presentedAt = p.now()
	p.mu.Unlock()

	return rec.RecordImpression(ctx, p.Campaign.ID)
}

// Skippable reports whether the minimum exposure window has elapsed since
// the pre-roll was presented. It stays false until Present is called.
func (p *Preroll) Skippable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fired {
		return false
	}
	return p.now().Sub(p.presentedAt) >= MinPrerollExposure
}

// SkippableIn returns how long until skip becomes available. Zero means
// skip is already allowed.
func (p *Preroll) SkippableIn() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.fired {
		return MinPrerollExposure
	}
	remaining := MinPrerollExposure - p.now().Sub(p.presentedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Click records a tap on the pre-roll and returns the campaign target URL
// together with whether the caller should open it. Clicking never
// dismisses the session or touches the skip timer.
func (p *Preroll) Click(ctx context.Context, rec ExposureRecorder) (string, bool, error) {
	if err := rec.RecordClick(ctx, p.Campaign.ID); err != nil {
		return "", false, err
	}
	return p.Campaign.TargetURL, p.Campaign.TargetURL != "", nil
}

// Dismiss ends the session, whether by skip or natural completion. The
// underlying video's own view counting is the content component's concern.
func (p *Preroll) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dismissed = true
}

// Dismissed returns true once the session has ended
func (p *Preroll) Dismissed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dismissed
}
