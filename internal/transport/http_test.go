package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prajwalbharadwajbm/adweave/internal/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
	"github.com/prajwalbharadwajbm/adweave/internal/repository"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

// newTestServer spins up the full handler stack over an in-memory store
func newTestServer(t *testing.T) (*httptest.Server, *repository.MemoryRepository) {
	t.Helper()

	repo := repository.NewMemoryRepository()
	endpoints := endpoint.MakeEndpoints(
		service.NewCampaignService(repo, nil),
		service.NewAttributionService(repo),
		service.NewRevenueService(repo),
		service.NewInterleaveService(repo),
	)

	srv := httptest.NewServer(NewHTTPHandler(endpoints, log.NewNopLogger()))
	t.Cleanup(srv.Close)
	return srv, repo
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestCreateCampaign(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/campaigns", map[string]any{
		"name":       "Spotify",
		"budget":     50000,
		"image_url":  "https://img/spotify.png",
		"target_url": "https://spotify.com",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body endpoint.CreateCampaignResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, int64(1), body.Campaign.ID)
	assert.Equal(t, models.StatusActive, body.Campaign.Status)
	assert.Equal(t, "Spotify", body.Campaign.Name)
}

func TestCreateCampaign_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", "{not json"},
		{"empty name", `{"name":"","budget":100}`},
		{"negative budget", `{"name":"Spotify","budget":-1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/campaigns", "application/json", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestGetCampaign(t *testing.T) {
	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodGet, fmt.Sprintf("%s/v1/campaigns/%d", srv.URL, created.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.GetCampaignResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, created.ID, body.Campaign.ID)
}

func TestGetCampaign_Errors(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/campaigns/999", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/v1/campaigns/abc", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListCampaigns(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()
	_, _ = repo.Create(ctx, "a", 0, "", "")
	_, _ = repo.Create(ctx, "b", 0, "", "")

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/campaigns", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.ListCampaignsResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Campaigns, 2)
	assert.Equal(t, "a", body.Campaigns[0].Name)
}

func TestUpdateCampaignStatus(t *testing.T) {
	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)
	statusURL := fmt.Sprintf("%s/v1/campaigns/%d/status", srv.URL, created.ID)

	resp := doJSON(t, http.MethodPut, statusURL, map[string]string{"status": "paused"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.UpdateStatusResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, models.StatusPaused, body.Campaign.Status)
}

func TestUpdateCampaignStatus_CompletedIsTerminal(t *testing.T) {
	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)
	statusURL := fmt.Sprintf("%s/v1/campaigns/%d/status", srv.URL, created.ID)

	resp := doJSON(t, http.MethodPut, statusURL, map[string]string{"status": "completed"})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, statusURL, map[string]string{"status": "active"})
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The rejected transition changed nothing.
	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, stored.Status)
}

func TestUpdateCampaignStatus_Errors(t *testing.T) {
	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPut, fmt.Sprintf("%s/v1/campaigns/%d/status", srv.URL, created.ID), map[string]string{"status": "archived"})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, srv.URL+"/v1/campaigns/999/status", map[string]string{"status": "paused"})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRecordExposures(t *testing.T) {
	srv, repo := newTestServer(t)
	created, err := repo.Create(context.Background(), "Spotify", 1000, "", "")
	require.NoError(t, err)

	resp := doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/campaigns/%d/impressions", srv.URL, created.ID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, fmt.Sprintf("%s/v1/campaigns/%d/clicks", srv.URL, created.ID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	stored, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Impressions)
	assert.Equal(t, int64(1), stored.Clicks)
}

func TestRecordExposures_MissingCampaignStillAccepted(t *testing.T) {
	srv, _ := newTestServer(t)

	// Telemetry for unknown campaigns is dropped, never an error.
	for i := 0; i < 3; i++ {
		resp := doJSON(t, http.MethodPost, srv.URL+"/v1/campaigns/999/impressions", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/campaigns/999/clicks", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestRevenueStats(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()
	created, err := repo.Create(ctx, "Spotify", 1000, "", "")
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, repo.IncrementImpressions(ctx, created.ID))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.IncrementClicks(ctx, created.ID))
	}

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/stats/revenue", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.RevenueStatsResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, int64(100), body.Stats.TotalImpressions)
	assert.Equal(t, int64(5), body.Stats.TotalClicks)
	assert.InDelta(t, 0.05, body.Stats.CTR, 1e-9)
}

func TestBuildFeed(t *testing.T) {
	srv, repo := newTestServer(t)
	ctx := context.Background()
	_, _ = repo.Create(ctx, "a", 0, "", "")
	_, _ = repo.Create(ctx, "b", 0, "", "")
	_, _ = repo.Create(ctx, "c", 0, "", "")

	items := make([]map[string]any, 9)
	for i := range items {
		items[i] = map[string]any{"id": i + 1}
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/feed", map[string]any{"items": items})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.BuildFeedResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, service.RoundRobinPlacement, body.Strategy)
	require.Len(t, body.Entries, 11)
	assert.Equal(t, models.FeedEntryAd, body.Entries[4].Kind)
	assert.Equal(t, "a", body.Entries[4].Ad.Campaign.Name)
	assert.Equal(t, models.FeedEntryAd, body.Entries[9].Kind)
	assert.Equal(t, "b", body.Entries[9].Ad.Campaign.Name)
}

func TestBuildFeed_NoCampaigns(t *testing.T) {
	srv, _ := newTestServer(t)

	items := make([]map[string]any, 6)
	for i := range items {
		items[i] = map[string]any{"id": i + 1}
	}

	resp := doJSON(t, http.MethodPost, srv.URL+"/v1/feed", map[string]any{"items": items})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.BuildFeedResponse
	decodeBody(t, resp, &body)
	require.Len(t, body.Entries, 6)
	for _, e := range body.Entries {
		assert.Equal(t, models.FeedEntryPost, e.Kind)
	}
}

func TestBuildFeed_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/feed", "application/json", bytes.NewBufferString("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPickPreroll(t *testing.T) {
	srv, repo := newTestServer(t)
	_, _ = repo.Create(context.Background(), "Spotify", 1000, "", "https://spotify.com")

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/preroll", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body endpoint.PickPrerollResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, service.UniformRandomPick, body.Strategy)
	require.NotNil(t, body.Preroll)
	assert.Equal(t, "Spotify", body.Preroll.Campaign.Name)
	assert.NotEmpty(t, body.Preroll.Token)
	assert.Equal(t, int64(3), body.SkippableIn)
}

func TestPickPreroll_SkipWindowInSeconds(t *testing.T) {
	srv, repo := newTestServer(t)
	_, _ = repo.Create(context.Background(), "Spotify", 1000, "", "")

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/preroll", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The wire contract is whole seconds, not a duration in nanoseconds.
	var raw map[string]any
	decodeBody(t, resp, &raw)
	assert.Equal(t, float64(3), raw["skippable_in_seconds"])
	assert.NotContains(t, raw, "skippable_in")
}

func TestPickPreroll_NoCampaigns(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/v1/preroll", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "adweave", body["service"])
}
