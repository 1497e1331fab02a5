// Package geocode resolves free-form addresses into coordinates using the
// Google Maps Geocoding API.
package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// GoogleGeocoder adapts the Google Maps client to the Geocoder port.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a geocoder with the given API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Resolve geocodes an address and returns the first candidate's coordinate.
func (g *GoogleGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("geocode: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinate{}, domain.ErrInsufficientData
	}

	loc := results[0].Geometry.Location
	return domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}
