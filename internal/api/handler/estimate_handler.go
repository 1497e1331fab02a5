package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shiptrace/tracking-engine/internal/api/metrics"
	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// EstimateHandler exposes the creation-time preview and location picker.
type EstimateHandler struct {
	service ports.EstimateService
}

func NewEstimateHandler(service ports.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

// Preview handles POST /v1/estimates/preview.
// Computes the distance/cost preview the creation form shows before
// submission, with the same formula the backend re-derives afterwards.
func (h *EstimateHandler) Preview(c echo.Context) error {
	var req previewEstimateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.PreviewEstimate(ports.EstimateInput{
		Origin:      domain.Coordinate{Lat: req.Origin.Lat, Lng: req.Origin.Lng},
		Destination: domain.Coordinate{Lat: req.Destination.Lat, Lng: req.Destination.Lng},
		WeightKg:    req.WeightKg,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			metrics.EstimatesPreviewedTotal.WithLabelValues("insufficient_data").Inc()
		}
		return err
	}
	metrics.EstimatesPreviewedTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, previewEstimateResponse{
		DistanceKm: result.Preview.DistanceKm,
		WeightKg:   result.Preview.WeightKg,
		TotalCost:  result.Preview.TotalCost,
	})
}

// Geocode handles POST /v1/estimates/geocode.
// Resolves a typed address into a coordinate for the location picker.
func (h *EstimateHandler) Geocode(c echo.Context) error {
	var req geocodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pos, err := h.service.ResolveAddress(c.Request().Context(), req.Address)
	if err != nil {
		metrics.GeocodeRequestsTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.GeocodeRequestsTotal.WithLabelValues("ok").Inc()

	return c.JSON(http.StatusOK, coordinateResponse{Lat: pos.Lat, Lng: pos.Lng})
}

// Position handles GET /v1/estimates/position.
// One-off "use current device position" request; failure reasons stay
// distinguishable for the picker UI.
func (h *EstimateHandler) Position(c echo.Context) error {
	pos, err := h.service.CurrentPosition(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, coordinateResponse{Lat: pos.Lat, Lng: pos.Lng})
}
