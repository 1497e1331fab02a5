package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// TrackingHandler exposes the live tracking view to the dashboard: watch
// session lifecycle, the display payload, manual refresh, and lookup by the
// public tracking number.
type TrackingHandler struct {
	service  ports.TrackerService
	resolver ports.TrackingNumberResolver
}

func NewTrackingHandler(service ports.TrackerService, resolver ports.TrackingNumberResolver) *TrackingHandler {
	return &TrackingHandler{service: service, resolver: resolver}
}

// Get handles GET /v1/tracking/:shipment_id.
// Returns the current display payload; without an open watch session a
// one-off fetch is made.
func (h *TrackingHandler) Get(c echo.Context) error {
	shipmentID := c.Param("shipment_id")
	if shipmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "shipment_id is required")
	}

	view, err := h.service.View(c.Request().Context(), shipmentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackerViewResponse(view))
}

// GetByNumber handles GET /v1/tracking/number/:tracking_number.
// Resolves the public tracking number printed on the parcel to its shipment
// and returns the same payload as Get.
func (h *TrackingHandler) GetByNumber(c echo.Context) error {
	trackingNumber := c.Param("tracking_number")
	if trackingNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "tracking_number is required")
	}

	snap, err := h.resolver.FindByTrackingNumber(c.Request().Context(), trackingNumber)
	if err != nil {
		return err
	}

	view, err := h.service.View(c.Request().Context(), snap.ShipmentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackerViewResponse(view))
}

// Watch handles POST /v1/tracking/:shipment_id/watch.
// Opens (or joins) a watch session; auto-refresh runs while the shipment is
// in transit.
func (h *TrackingHandler) Watch(c echo.Context) error {
	shipmentID := c.Param("shipment_id")
	if shipmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "shipment_id is required")
	}

	view, err := h.service.Watch(c.Request().Context(), shipmentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, trackerViewResponse(view))
}

// Unwatch handles DELETE /v1/tracking/:shipment_id/watch.
// Leaving as the last watcher releases the session's timers.
func (h *TrackingHandler) Unwatch(c echo.Context) error {
	shipmentID := c.Param("shipment_id")
	if shipmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "shipment_id is required")
	}

	h.service.Unwatch(shipmentID)
	return c.NoContent(http.StatusNoContent)
}

// Refresh handles POST /v1/tracking/:shipment_id/refresh.
// A user-triggered refresh resets the staleness baseline immediately; a
// failed fetch keeps the previous snapshot and is reported on the view.
func (h *TrackingHandler) Refresh(c echo.Context) error {
	shipmentID := c.Param("shipment_id")
	if shipmentID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "shipment_id is required")
	}

	view, err := h.service.Refresh(c.Request().Context(), shipmentID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, trackerViewResponse(view))
}
