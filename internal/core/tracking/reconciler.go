// Package tracking implements the live tracking engine: position
// reconciliation, route view derivation, the progress timeline, and the
// refresh scheduling that keeps a watched shipment's snapshot current.
package tracking

import "github.com/shiptrace/tracking-engine/internal/core/domain"

// ResolvePosition picks the single best-known current position from a
// snapshot. The live-location field wins; otherwise the last route sample in
// supplied order is used. ok is false when neither source is present —
// callers must render a "not yet available" state and never plot a default
// zero coordinate.
func ResolvePosition(snap *domain.TrackingSnapshot) (domain.Position, bool) {
	if snap == nil {
		return domain.Position{}, false
	}

	if snap.CurrentLocation != nil {
		return positionFromSample(*snap.CurrentLocation), true
	}

	if n := len(snap.Route); n > 0 {
		return positionFromSample(snap.Route[n-1]), true
	}

	return domain.Position{}, false
}

func positionFromSample(s domain.RouteSample) domain.Position {
	return domain.Position{
		Coordinate: s.Position,
		Timestamp:  s.Timestamp,
		SpeedKmh:   s.SpeedKmh,
	}
}
