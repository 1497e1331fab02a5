package ports

import (
	"context"
	"time"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// MarkerKind distinguishes the map markers a route view produces.
type MarkerKind string

const (
	MarkerOrigin      MarkerKind = "origin"
	MarkerDestination MarkerKind = "destination"
	MarkerLive        MarkerKind = "live"
)

// Marker is a single renderable map marker.
type Marker struct {
	Kind     MarkerKind        `json:"kind"`
	Position domain.Coordinate `json:"position"`
	Label    string            `json:"label,omitempty"`
}

// RouteView is the full set of renderable primitives derived from one
// snapshot: markers, lines, and the viewport that frames them.
type RouteView struct {
	Origin      Marker `json:"origin"`
	Destination Marker `json:"destination"`
	// ReferenceLine is the straight origin-to-destination line, always present
	// once both endpoints exist.
	ReferenceLine []domain.Coordinate `json:"reference_line"`
	// Path is the polyline through all route samples in supplied order; nil
	// until at least two samples exist.
	Path []domain.Coordinate `json:"path,omitempty"`
	// Live is the resolved current-position marker; nil when no position is
	// resolvable.
	Live   *Marker               `json:"live,omitempty"`
	Bounds domain.ViewportBounds `json:"bounds"`
	Style  domain.StatusStyle    `json:"style"`
}

// TimelineStep is one milestone in the four-step progress timeline.
type TimelineStep struct {
	Label     string     `json:"label"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Completed bool       `json:"completed"`
	Active    bool       `json:"active"`
}

// TrackerView is the complete display payload for one tracked shipment.
type TrackerView struct {
	ShipmentID     string                   `json:"shipment_id"`
	TrackingNumber string                   `json:"tracking_number"`
	Status         domain.ShipmentStatus    `json:"status"`
	Style          domain.StatusStyle       `json:"style"`
	Route          *RouteView               `json:"route,omitempty"`
	Timeline       []TimelineStep           `json:"timeline"`
	Position       *domain.Position         `json:"position,omitempty"`
	StalenessSec   int64                    `json:"staleness_seconds"`
	AutoRefresh    bool                     `json:"auto_refresh"`
	// LastError carries the most recent fetch failure, if the displayed
	// snapshot is older than the last refresh attempt.
	LastError string `json:"last_error,omitempty"`
}

// TrackerService manages watch sessions and assembles display payloads.
type TrackerService interface {
	// Watch opens (or joins) a watch session for the shipment and returns the
	// initial view. Auto-refresh is active only while the shipment is in
	// transit.
	Watch(ctx context.Context, shipmentID string) (*TrackerView, error)
	// Unwatch leaves the session; the last watcher releases all timers.
	Unwatch(shipmentID string)
	// View returns the current display payload without triggering a fetch,
	// except when no session exists, in which case a one-off fetch is made.
	View(ctx context.Context, shipmentID string) (*TrackerView, error)
	// Refresh performs a user-triggered refresh, resetting the staleness
	// baseline immediately.
	Refresh(ctx context.Context, shipmentID string) (*TrackerView, error)
}
