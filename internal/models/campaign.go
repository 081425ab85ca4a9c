package models

import (
	"time"
)

// Campaign is a paid placement an advertiser runs on the platform. It
// carries a budget, the amount spent so far and the attribution counters
// the recorder folds exposure events into. Monetary amounts are stored in
// the smallest currency unit (cents).
type Campaign struct {
	ID          int64          `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Status      CampaignStatus `json:"status" db:"status"`
	ImageURL    string         `json:"image_url" db:"image_url"`
	TargetURL   string         `json:"target_url" db:"target_url"`
	Budget      int64          `json:"budget" db:"budget"`
	Spent       int64          `json:"spent" db:"spent"`
	Impressions int64          `json:"impressions" db:"impressions"`
	Clicks      int64          `json:"clicks" db:"clicks"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

// enum values for CampaignStatus
const (
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// Valid returns true if the status is one of the known lifecycle states
func (s CampaignStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle state machine allows a
// change from s to next. Active and paused toggle freely, both may be
// completed, and completed is terminal. Self-transitions are rejected.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case StatusActive:
		return next == StatusPaused || next == StatusCompleted
	case StatusPaused:
		return next == StatusActive || next == StatusCompleted
	}
	// completed campaigns are retained for reporting but never leave the state
	return false
}

// IsActive returns true if the campaign is eligible for ad placement
func (c *Campaign) IsActive() bool {
	return c.Status == StatusActive
}

// CTR returns the campaign click-through rate as a fraction of impressions
func (c *Campaign) CTR() float64 {
	if c.Impressions == 0 {
		return 0
	}
	return float64(c.Clicks) / float64(c.Impressions)
}
