package tracking

import (
	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// BuildRouteView derives the renderable primitives for one snapshot: origin
// and destination markers, the straight reference line between them, the path
// polyline through the route samples, the resolved live marker, and the
// viewport bounds framing all of it.
//
// Returns domain.ErrInsufficientData when origin or destination coordinates
// are absent or non-finite; no degenerate frame is ever emitted.
func BuildRouteView(snap *domain.TrackingSnapshot) (*ports.RouteView, error) {
	if snap == nil {
		return nil, domain.ErrInsufficientData
	}

	origin := snap.Origin.Coordinate
	dest := snap.Destination.Coordinate
	if !origin.Valid() || !dest.Valid() {
		return nil, domain.ErrInsufficientData
	}

	view := &ports.RouteView{
		Origin: ports.Marker{
			Kind:     ports.MarkerOrigin,
			Position: origin,
			Label:    snap.Origin.Address,
		},
		Destination: ports.Marker{
			Kind:     ports.MarkerDestination,
			Position: dest,
			Label:    snap.Destination.Address,
		},
		ReferenceLine: []domain.Coordinate{origin, dest},
		Style:         domain.StyleFor(snap.Status),
	}

	// Path polyline only once there are at least two samples to connect.
	if len(snap.Route) >= 2 {
		path := make([]domain.Coordinate, len(snap.Route))
		for i, s := range snap.Route {
			path[i] = s.Position
		}
		view.Path = path
	}

	if pos, ok := ResolvePosition(snap); ok {
		view.Live = &ports.Marker{
			Kind:     ports.MarkerLive,
			Position: pos.Coordinate,
		}
	}

	bounds := domain.BoundsAround(origin)
	bounds.Extend(dest)
	for _, s := range snap.Route {
		bounds.Extend(s.Position)
	}
	view.Bounds = bounds

	return view, nil
}
