package estimate

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/geo"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// Service is the stateless EstimateService used by the HTTP surface. The
// device-location provider and geocoder are optional collaborators; when
// absent the corresponding operation reports domain.ErrLocationUnavailable.
type Service struct {
	location ports.DeviceLocationProvider
	geocoder ports.Geocoder
	log      zerolog.Logger
}

func NewService(location ports.DeviceLocationProvider, geocoder ports.Geocoder, log zerolog.Logger) *Service {
	return &Service{location: location, geocoder: geocoder, log: log}
}

// PreviewEstimate computes the distance and cost preview for a complete input
// pair. Missing or invalid inputs yield domain.ErrInsufficientData, never a
// partial preview.
func (s *Service) PreviewEstimate(input ports.EstimateInput) (*ports.EstimateResult, error) {
	if !input.Origin.Valid() || !input.Destination.Valid() {
		return nil, domain.ErrInsufficientData
	}

	distance := geo.DistanceKm(input.Origin, input.Destination)
	total, ok := geo.EstimateCost(distance, input.WeightKg)
	if !ok {
		return nil, domain.ErrInsufficientData
	}

	return &ports.EstimateResult{
		Preview: domain.CostPreview{
			DistanceKm: distance,
			WeightKg:   input.WeightKg,
			TotalCost:  total,
		},
	}, nil
}

// CurrentPosition resolves the device position through the configured
// provider. Failures keep their distinguishable domain reason.
func (s *Service) CurrentPosition(ctx context.Context) (domain.Coordinate, error) {
	if s.location == nil {
		return domain.Coordinate{}, domain.ErrLocationUnavailable
	}
	pos, err := s.location.CurrentPosition(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("device location request failed")
		return domain.Coordinate{}, err
	}
	if !pos.Valid() {
		return domain.Coordinate{}, domain.ErrLocationUnavailable
	}
	return pos, nil
}

// ResolveAddress geocodes a free-form address for the location picker.
func (s *Service) ResolveAddress(ctx context.Context, address string) (domain.Coordinate, error) {
	if s.geocoder == nil {
		return domain.Coordinate{}, domain.ErrLocationUnavailable
	}
	if address == "" {
		return domain.Coordinate{}, domain.ErrInsufficientData
	}
	pos, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("resolve address: %w", err)
	}
	return pos, nil
}

var _ ports.EstimateService = (*Service)(nil)
