package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prajwalbharadwajbm/adweave/internal/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/models"
)

// NewHTTPHandler creates HTTP handlers for the attribution engine
func NewHTTPHandler(endpoints endpoint.Endpoints, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
	}

	r := mux.NewRouter()

	// Campaign lifecycle
	r.Handle("/v1/campaigns", httptransport.NewServer(
		endpoints.CreateCampaignEndpoint,
		decodeCreateCampaignRequest,
		encodeCreateCampaignResponse,
		options...,
	)).Methods("POST")

	r.Handle("/v1/campaigns", httptransport.NewServer(
		endpoints.ListCampaignsEndpoint,
		decodeEmptyRequest(endpoint.ListCampaignsRequest{}),
		encodeJSONResponse,
		options...,
	)).Methods("GET")

	r.Handle("/v1/campaigns/{id}", httptransport.NewServer(
		endpoints.GetCampaignEndpoint,
		decodeGetCampaignRequest,
		encodeJSONResponse,
		options...,
	)).Methods("GET")

	r.Handle("/v1/campaigns/{id}/status", httptransport.NewServer(
		endpoints.UpdateStatusEndpoint,
		decodeUpdateStatusRequest,
		encodeJSONResponse,
		options...,
	)).Methods("PUT")

	// Attribution. Exposure recording is fire-and-forget for callers.
	r.Handle("/v1/campaigns/{id}/impressions", httptransport.NewServer(
		endpoints.RecordImpressionEndpoint,
		decodeRecordExposureRequest,
		encodeExposureResponse,
		options...,
	)).Methods("POST")

	r.Handle("/v1/campaigns/{id}/clicks", httptransport.NewServer(
		endpoints.RecordClickEndpoint,
		decodeRecordExposureRequest,
		encodeExposureResponse,
		options...,
	)).Methods("POST")

	// Aggregation
	r.Handle("/v1/stats/revenue", httptransport.NewServer(
		endpoints.RevenueStatsEndpoint,
		decodeEmptyRequest(endpoint.RevenueStatsRequest{}),
		encodeJSONResponse,
		options...,
	)).Methods("GET")

	// Interleaving
	r.Handle("/v1/feed", httptransport.NewServer(
		endpoints.BuildFeedEndpoint,
		decodeBuildFeedRequest,
		encodeJSONResponse,
		options...,
	)).Methods("POST")

	r.Handle("/v1/preroll", httptransport.NewServer(
		endpoints.PickPrerollEndpoint,
		decodeEmptyRequest(endpoint.PickPrerollRequest{}),
		encodePrerollResponse,
		options...,
	)).Methods("GET")

	// Operational endpoints
	r.HandleFunc("/health", healthHandler).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

// decodeEmptyRequest returns a decoder for endpoints without request bodies
func decodeEmptyRequest(req any) httptransport.DecodeRequestFunc {
	return func(context.Context, *http.Request) (any, error) {
		return req, nil
	}
}

// decodeCreateCampaignRequest decodes the campaign creation body
func decodeCreateCampaignRequest(_ context.Context, r *http.Request) (any, error) {
	var req endpoint.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &models.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	return req, nil
}

// decodeGetCampaignRequest decodes the {id} path variable
func decodeGetCampaignRequest(_ context.Context, r *http.Request) (any, error) {
	id, err := campaignIDVar(r)
	if err != nil {
		return nil, err
	}
	return endpoint.GetCampaignRequest{ID: id}, nil
}

// decodeUpdateStatusRequest decodes the {id} path variable and status body
func decodeUpdateStatusRequest(_ context.Context, r *http.Request) (any, error) {
	id, err := campaignIDVar(r)
	if err != nil {
		return nil, err
	}

	var req endpoint.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &models.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	req.ID = id
	return req, nil
}

// decodeRecordExposureRequest decodes the {id} path variable for exposure events
func decodeRecordExposureRequest(_ context.Context, r *http.Request) (any, error) {
	id, err := campaignIDVar(r)
	if err != nil {
		return nil, err
	}
	return endpoint.RecordExposureRequest{CampaignID: id}, nil
}

// decodeBuildFeedRequest decodes the organic item sequence
func decodeBuildFeedRequest(_ context.Context, r *http.Request) (any, error) {
	var req endpoint.BuildFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &models.ValidationError{Field: "body", Reason: "malformed JSON"}
	}
	return req, nil
}

// campaignIDVar parses the {id} path variable
func campaignIDVar(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}

// failer is implemented by all response types carrying a business error
type failer interface {
	Failed() error
}

// encodeJSONResponse encodes a successful response as JSON, deferring to
// encodeError when the endpoint reported a business failure
func encodeJSONResponse(ctx context.Context, w http.ResponseWriter, response any) error {
	if f, ok := response.(failer); ok && f.Failed() != nil {
		encodeError(ctx, f.Failed(), w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(response)
}

// encodeCreateCampaignResponse answers 201 for a created campaign
func encodeCreateCampaignResponse(ctx context.Context, w http.ResponseWriter, response any) error {
	resp := response.(endpoint.CreateCampaignResponse)
	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(resp)
}

// encodeExposureResponse always answers 202: exposure recording is best
// effort and a failed event is simply dropped, never surfaced to the
// display surface
func encodeExposureResponse(_ context.Context, w http.ResponseWriter, _ any) error {
	w.WriteHeader(http.StatusAccepted)
	return nil
}

// encodePrerollResponse answers 204 when no pre-roll is shown
func encodePrerollResponse(ctx context.Context, w http.ResponseWriter, response any) error {
	resp := response.(endpoint.PickPrerollResponse)
	if resp.Err != nil {
		encodeError(ctx, resp.Err, w)
		return nil
	}
	if resp.Preroll == nil {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(resp)
}

// encodeError maps the error taxonomy onto HTTP status codes
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case models.IsValidation(err):
		w.WriteHeader(http.StatusBadRequest)
	case models.IsNotFound(err):
		w.WriteHeader(http.StatusNotFound)
	case models.IsInvalidTransition(err):
		w.WriteHeader(http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}

	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "adweave",
		"version": "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
