package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shiptrace/tracking-engine/internal/api/handler"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// db and rdb are only used by the readiness probe and may be nil in reduced
// deployments.
func NewRouter(tracker ports.TrackerService, resolver ports.TrackingNumberResolver, estimator ports.EstimateService, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("tracking_http"))

	// --- Tracking routes ---
	trackingHandler := handler.NewTrackingHandler(tracker, resolver)
	e.GET("/v1/tracking/:shipment_id", trackingHandler.Get)
	e.GET("/v1/tracking/number/:tracking_number", trackingHandler.GetByNumber)
	e.POST("/v1/tracking/:shipment_id/watch", trackingHandler.Watch)
	e.DELETE("/v1/tracking/:shipment_id/watch", trackingHandler.Unwatch)
	e.POST("/v1/tracking/:shipment_id/refresh", trackingHandler.Refresh)

	// --- Estimation routes ---
	estimateHandler := handler.NewEstimateHandler(estimator)
	e.POST("/v1/estimates/preview", estimateHandler.Preview)
	e.POST("/v1/estimates/geocode", estimateHandler.Geocode)
	e.GET("/v1/estimates/position", estimateHandler.Position)

	// --- Health probes and metrics ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
