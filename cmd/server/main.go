package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/prajwalbharadwajbm/adweave/internal/cache"
	"github.com/prajwalbharadwajbm/adweave/internal/config"
	"github.com/prajwalbharadwajbm/adweave/internal/database"
	"github.com/prajwalbharadwajbm/adweave/internal/logger"
	"github.com/prajwalbharadwajbm/adweave/internal/metrics"
	"github.com/prajwalbharadwajbm/adweave/internal/repository"
	"github.com/prajwalbharadwajbm/adweave/internal/service"
)

const VERSION = "1.0.0"

func init() {
	config.LoadConfigs()
}

func main() {
	log := logger.New(logger.Config{
		Service: "adweave",
		Version: VERSION,
	})

	m := metrics.NewPrometheusMetrics()

	repo, cleanup, err := buildRepository(log, m)
	if err != nil {
		level.Error(log).Log("msg", "failed to initialize campaign store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	router := buildHandler(log, m, repo)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfigInstance.GeneralConfig.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	level.Info(log).Log("msg", "starting server", "port", config.AppConfigInstance.GeneralConfig.Port)
	if err := srv.ListenAndServe(); err != nil {
		level.Error(log).Log("msg", "failed to serve http server", "error", err)
		os.Exit(1)
	}
}

// buildRepository assembles the campaign store stack: postgres (with
// migrations) when a database is configured, the seeded in-memory arena
// otherwise, wrapped with instrumentation and optionally the
// active-set cache. The returned cleanup releases every resource the
// stack acquired, in reverse order.
func buildRepository(log kitlog.Logger, m *metrics.Metrics) (service.CampaignRepository, func(), error) {
	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	var repo service.CampaignRepository
	dbCfg := config.AppConfigInstance.DatabaseConfig
	if dbCfg.Enabled {
		migrator := database.NewMigrationManager(dbCfg.MigrationsDir)
		if err := migrator.Up(); err != nil {
			return nil, cleanup, err
		}

		db, err := database.NewConnection(dbCfg)
		if err != nil {
			return nil, cleanup, err
		}
		cleanups = append(cleanups, func() { db.Close() })

		m.SetHealthCheckStatus("database", true)
		repo = repository.NewPostgresRepository(db)
		level.Info(log).Log("msg", "using postgres campaign store", "host", dbCfg.Host, "db", dbCfg.DBName)
	} else {
		repo = repository.NewSeededMemoryRepository()
		level.Info(log).Log("msg", "using in-memory campaign store with sample campaigns")
	}

	repo = repository.NewInstrumentedRepository(repo, m)

	cacheCfg := config.GetCacheConfig()
	if cacheCfg.EnableMemory || cacheCfg.EnableRedis {
		hybrid, err := cache.NewHybridCache(cacheCfg)
		if err != nil {
			// Run uncached rather than refuse to start: the store stays correct.
			level.Error(log).Log("msg", "cache unavailable, serving uncached", "error", err)
			return repo, cleanup, nil
		}

		listenerCtx, stopListener := context.WithCancel(context.Background())
		go func() {
			if err := hybrid.StartInvalidationListener(listenerCtx); err != nil && err != context.Canceled {
				level.Warn(log).Log("msg", "cache invalidation listener stopped", "error", err)
			}
		}()
		cleanups = append(cleanups, func() {
			stopListener()
			if err := hybrid.Close(); err != nil {
				level.Warn(log).Log("msg", "failed to close cache", "error", err)
			}
		})

		repo = cache.NewCachedRepository(repo, hybrid, cacheCfg.DefaultTTL)
	}

	return repo, cleanup, nil
}
