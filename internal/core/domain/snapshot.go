package domain

import (
	"math"
	"time"
)

// Coordinate represents a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Valid reports whether the coordinate is finite and inside the WGS84 range.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// NamedPoint is a coordinate plus its human-readable address.
type NamedPoint struct {
	Coordinate `bson:",inline"`
	Address    string `json:"address" bson:"address"`
}

// RouteSample is a single reported GPS ping. Immutable once received; the
// supplied sequence order is treated as the path order for drawing.
type RouteSample struct {
	Position  Coordinate `json:"position" bson:"position"`
	Timestamp time.Time  `json:"timestamp" bson:"timestamp"`
	// SpeedKmh is nil when the source did not report a speed.
	SpeedKmh *float64 `json:"speed_kmh,omitempty" bson:"speed_kmh,omitempty"`
}

// TrackingSnapshot is a single, complete, externally-fetched view of a
// shipment's tracking state at one instant. Every refresh replaces the whole
// snapshot; route histories of two snapshots are never merged.
type TrackingSnapshot struct {
	ShipmentID      string         `json:"shipment_id" bson:"_id"`
	TrackingNumber  string         `json:"tracking_number" bson:"tracking_number"`
	Status          ShipmentStatus `json:"status" bson:"status"`
	Origin          NamedPoint     `json:"origin" bson:"origin"`
	Destination     NamedPoint     `json:"destination" bson:"destination"`
	Route           []RouteSample  `json:"route" bson:"route"`
	CurrentLocation *RouteSample   `json:"current_location,omitempty" bson:"current_location,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	AssignedAt      *time.Time     `json:"assigned_at,omitempty" bson:"assigned_at,omitempty"`
	PickedUpAt      *time.Time     `json:"picked_up_at,omitempty" bson:"picked_up_at,omitempty"`
	DeliveredAt     *time.Time     `json:"delivered_at,omitempty" bson:"delivered_at,omitempty"`
}

// Position is the single best-known current position of a shipment, resolved
// from a snapshot's live-location field or its route history.
type Position struct {
	Coordinate Coordinate `json:"coordinate"`
	Timestamp  time.Time  `json:"timestamp"`
	SpeedKmh   *float64   `json:"speed_kmh,omitempty"`
}

// CostPreview is a derived distance/cost estimate shown during shipment
// authoring. Recomputed on every input change, never cached across inputs.
type CostPreview struct {
	DistanceKm float64 `json:"distance_km"`
	WeightKg   float64 `json:"weight_kg"`
	// TotalCost is in whole currency units.
	TotalCost int64 `json:"total_cost"`
}

// ViewportBounds is the min/max corner pair covering every point a map view
// must display. Purely derived; recomputed whenever the snapshot changes.
type ViewportBounds struct {
	Min Coordinate `json:"min"`
	Max Coordinate `json:"max"`
}

// Extend grows the bounds to include p.
func (b *ViewportBounds) Extend(p Coordinate) {
	if p.Lat < b.Min.Lat {
		b.Min.Lat = p.Lat
	}
	if p.Lat > b.Max.Lat {
		b.Max.Lat = p.Lat
	}
	if p.Lng < b.Min.Lng {
		b.Min.Lng = p.Lng
	}
	if p.Lng > b.Max.Lng {
		b.Max.Lng = p.Lng
	}
}

// BoundsAround returns bounds collapsed onto a single point, ready to be
// extended with further points.
func BoundsAround(p Coordinate) ViewportBounds {
	return ViewportBounds{Min: p, Max: p}
}
