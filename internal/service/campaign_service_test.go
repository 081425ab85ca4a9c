package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

func TestCampaignService_CreateCampaign(t *testing.T) {
	repo := newStubRepo()
	svc := NewCampaignService(repo, nil)

	campaign, err := svc.CreateCampaign(context.Background(), "Spotify", 50000, "https://img/spotify.png", "https://spotify.com")
	require.NoError(t, err)

	assert.NotZero(t, campaign.ID)
	assert.Equal(t, "Spotify", campaign.Name)
	assert.Equal(t, models.StatusActive, campaign.Status)
	assert.Equal(t, int64(50000), campaign.Budget)
	assert.Zero(t, campaign.Impressions)
	assert.Zero(t, campaign.Clicks)
}

func TestCampaignService_CreateCampaign_Validation(t *testing.T) {
	tests := []struct {
		name         string
		campaignName string
		budget       int64
	}{
		{"empty name", "", 1000},
		{"whitespace name", "   ", 1000},
		{"negative budget", "Spotify", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			svc := NewCampaignService(repo, nil)

			_, err := svc.CreateCampaign(context.Background(), tt.campaignName, tt.budget, "", "")
			assert.True(t, models.IsValidation(err))

			// Validation failures must not touch the store.
			campaigns, _ := repo.List(context.Background())
			assert.Empty(t, campaigns)
		})
	}
}

func TestCampaignService_CreateCampaign_ZeroBudgetAllowed(t *testing.T) {
	svc := NewCampaignService(newStubRepo(), nil)

	_, err := svc.CreateCampaign(context.Background(), "house ad", 0, "", "")
	assert.NoError(t, err)
}

func TestCampaignService_GetCampaign(t *testing.T) {
	repo := newStubRepo()
	seeded := repo.seed(models.Campaign{Name: "Spotify", Status: models.StatusPaused})
	svc := NewCampaignService(repo, nil)

	campaign, err := svc.GetCampaign(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, campaign)

	_, err = svc.GetCampaign(context.Background(), 999)
	assert.True(t, models.IsNotFound(err))
}

func TestCampaignService_UpdateCampaignStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.CampaignStatus
		to      models.CampaignStatus
		allowed bool
	}{
		{"pause active", models.StatusActive, models.StatusPaused, true},
		{"resume paused", models.StatusPaused, models.StatusActive, true},
		{"complete active", models.StatusActive, models.StatusCompleted, true},
		{"complete paused", models.StatusPaused, models.StatusCompleted, true},
		{"reactivate completed", models.StatusCompleted, models.StatusActive, false},
		{"pause completed", models.StatusCompleted, models.StatusPaused, false},
		{"pause paused", models.StatusPaused, models.StatusPaused, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newStubRepo()
			seeded := repo.seed(models.Campaign{Name: "c", Status: tt.from})
			svc := NewCampaignService(repo, nil)

			updated, err := svc.UpdateCampaignStatus(context.Background(), seeded.ID, tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, updated.Status)
				return
			}

			assert.True(t, models.IsInvalidTransition(err))

			// A rejected transition leaves the record exactly as it was.
			stored, getErr := repo.Get(context.Background(), seeded.ID)
			require.NoError(t, getErr)
			assert.Equal(t, tt.from, stored.Status)
		})
	}
}

func TestCampaignService_UpdateCampaignStatus_UnknownStatus(t *testing.T) {
	repo := newStubRepo()
	seeded := repo.seed(models.Campaign{Name: "c", Status: models.StatusActive})
	svc := NewCampaignService(repo, nil)

	_, err := svc.UpdateCampaignStatus(context.Background(), seeded.ID, models.CampaignStatus("archived"))
	assert.True(t, models.IsValidation(err))
}

func TestCampaignService_UpdateCampaignStatus_NotFound(t *testing.T) {
	svc := NewCampaignService(newStubRepo(), nil)

	_, err := svc.UpdateCampaignStatus(context.Background(), 999, models.StatusPaused)
	assert.True(t, models.IsNotFound(err))
}

func TestCampaignService_InvalidatesCacheOnEligibilityChange(t *testing.T) {
	repo := newStubRepo()
	inv := &stubInvalidator{}
	svc := NewCampaignService(repo, inv)

	created, err := svc.CreateCampaign(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, inv.calls)

	_, err = svc.UpdateCampaignStatus(context.Background(), created.ID, models.StatusPaused)
	require.NoError(t, err)
	assert.Equal(t, 2, inv.calls)

	// Failed operations do not invalidate.
	_, err = svc.UpdateCampaignStatus(context.Background(), created.ID, models.StatusPaused)
	assert.Error(t, err)
	assert.Equal(t, 2, inv.calls)
}
