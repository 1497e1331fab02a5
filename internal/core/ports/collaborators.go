package ports

import (
	"context"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

// SnapshotFetcher retrieves the current tracking snapshot for a shipment.
// The returned snapshot is a fresh, complete replacement; the engine never
// merges two snapshots' route histories.
type SnapshotFetcher interface {
	Fetch(ctx context.Context, shipmentID string) (*domain.TrackingSnapshot, error)
}

// TrackingNumberResolver maps a public tracking number to its snapshot, for
// dashboard lookups that know the label on the parcel but not the shipment id.
type TrackingNumberResolver interface {
	FindByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.TrackingSnapshot, error)
}

// SnapshotCache stores the last-known snapshot per shipment so a view can keep
// showing stale data, with an explicit staleness indicator, when a fetch fails.
type SnapshotCache interface {
	Put(ctx context.Context, snap *domain.TrackingSnapshot) error
	Get(ctx context.Context, shipmentID string) (*domain.TrackingSnapshot, error)
}

// DeviceLocationProvider answers a one-off "use current device position"
// request during shipment authoring. Failures are distinguishable:
// domain.ErrLocationPermissionDenied, ErrLocationUnavailable, ErrLocationTimeout.
type DeviceLocationProvider interface {
	CurrentPosition(ctx context.Context) (domain.Coordinate, error)
}

// Geocoder resolves a free-form address into a coordinate for the creation-time
// location picker.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (domain.Coordinate, error)
}

// RenderingSurface is an opaque sink that draws a route view. The core has no
// dependency on any rendering technology; adapters initialise themselves
// idempotently before the first Render call.
type RenderingSurface interface {
	Render(view RouteView) error
}
