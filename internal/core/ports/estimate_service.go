package ports

import (
	"context"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// EstimateInput carries the creation-form fields relevant to a cost preview.
type EstimateInput struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	WeightKg    float64
}

// EstimateResult is the preview returned during shipment authoring.
type EstimateResult struct {
	Preview domain.CostPreview
}

// EstimateService computes distance/cost previews and supports the
// creation-time location picker.
type EstimateService interface {
	// PreviewEstimate returns the cost preview for the input, or
	// domain.ErrInsufficientData when a required input is missing or invalid.
	PreviewEstimate(input EstimateInput) (*EstimateResult, error)
	// CurrentPosition resolves the device's position via the configured
	// provider; failure reasons are distinguishable domain errors.
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
	// ResolveAddress geocodes a free-form address into a coordinate.
	ResolveAddress(ctx context.Context, address string) (domain.Coordinate, error)
}
