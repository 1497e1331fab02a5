package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/shiptrace/tracking-engine/internal/api"
	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/estimate"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
	"github.com/shiptrace/tracking-engine/internal/core/tracking"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/config"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/db/mongo"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/db/redis"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/geocode"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/location"
	"github.com/shiptrace/tracking-engine/internal/infrastructure/render"
	"github.com/shiptrace/tracking-engine/pkg/logger"
)

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load(boot)
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "trackingd",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- Authoritative store ---
	mongoClient, mongoDB, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "trackingd",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	repo := mongo.NewSnapshotRepository(mongoDB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	// --- Stale-view fallback cache (optional) ---
	var cache ports.SnapshotCache
	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, ClientName: "trackingd"})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without snapshot cache")
	} else {
		defer rdb.Close()
		cache = redis.NewSnapshotCache(rdb, cfg.Refresh.SnapshotTTL)
	}

	// --- Geocoder (optional) ---
	var geocoder ports.Geocoder
	if cfg.Maps.APIKey != "" {
		geocoder, err = geocode.NewGoogleGeocoder(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal().Err(err).Msg("geocoder setup failed")
		}
	} else {
		log.Warn().Msg("MAPS_API_KEY not set, address geocoding disabled")
	}

	// --- Terminal position (optional) ---
	var device ports.DeviceLocationProvider
	if cfg.Device.Lat != nil && cfg.Device.Lng != nil {
		device, err = location.NewFixedProvider(domain.Coordinate{Lat: *cfg.Device.Lat, Lng: *cfg.Device.Lng})
		if err != nil {
			log.Fatal().Err(err).Msg("device position setup failed")
		}
	} else {
		log.Warn().Msg("DEVICE_LAT/DEVICE_LNG not set, current-position requests disabled")
	}

	// --- Core services ---
	surfaces := []ports.RenderingSurface{render.NewLogSurface(log)}
	manager := tracking.NewManager(repo, cache, surfaces, tracking.SchedulerOptions{
		RefreshInterval:   cfg.Refresh.Interval,
		StalenessInterval: cfg.Refresh.StalenessTick,
	}, log)
	manager.Start(ctx)
	defer manager.Stop()

	estimator := estimate.NewService(device, geocoder, log)

	// --- HTTP surface ---
	e := api.NewRouter(manager, repo, estimator, mongoDB, rdb, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("tracking engine started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
