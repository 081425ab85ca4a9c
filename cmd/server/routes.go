package main

import (
	"net/http"

	kitlog "github.com/go-kit/log"

	"github.com/prajwalbharadwajbm/adweave/internal/cache"
	"github.com/prajwalbharadwajbm/adweave/internal/endpoint"
	"github.com/prajwalbharadwajbm/adweave/internal/metrics"
	"github.com/prajwalbharadwajbm/adweave/internal/middleware"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
	"github.com/prajwalbharadwajbm/adweave/internal/transport"
)

// buildHandler assembles services, endpoints and the HTTP middleware chain
func buildHandler(log kitlog.Logger, m *metrics.Metrics, repo service.CampaignRepository) http.Handler {
	// The cached repository doubles as the invalidator for lifecycle changes.
	var invalidator service.CacheInvalidator
	if cached, ok := repo.(*cache.CachedRepository); ok {
		invalidator = cached
	}

	var lifecycle service.CampaignLifecycle = service.NewCampaignService(repo, invalidator)
	lifecycle = middleware.NewLifecycleLoggingMiddleware(log)(lifecycle)

	var attribution service.Attribution = service.NewAttributionService(repo)
	attribution = middleware.NewAttributionMetricsMiddleware(m)(attribution)
	attribution = middleware.NewAttributionLoggingMiddleware(log)(attribution)

	revenue := service.NewRevenueService(repo)

	var interleaver service.Interleaver = service.NewInterleaveService(repo)
	interleaver = middleware.NewInterleaveMetricsMiddleware(m)(interleaver)

	endpoints := endpoint.MakeEndpoints(lifecycle, attribution, revenue, interleaver)
	handler := transport.NewHTTPHandler(endpoints, log)

	// HTTP middleware chain: request id first, then metrics
	handler = middleware.NewMetricsMiddleware(m).Middleware(handler)
	handler = middleware.NewRequestIDMiddleware().Middleware(handler)

	return handler
}
