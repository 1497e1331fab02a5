package tracking

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

func trackedSnapshot() *domain.TrackingSnapshot {
	return &domain.TrackingSnapshot{
		ShipmentID:     "shp_001",
		TrackingNumber: "ST-0001A2B3",
		Status:         domain.StatusInTransit,
		Origin: domain.NamedPoint{
			Coordinate: domain.Coordinate{Lat: -1.0, Lng: 36.0},
			Address:    "Warehouse A",
		},
		Destination: domain.NamedPoint{
			Coordinate: domain.Coordinate{Lat: -1.5, Lng: 36.9},
			Address:    "Customer B",
		},
		CreatedAt: time.Now(),
	}
}

func TestBuildRouteView_EndpointsOnly(t *testing.T) {
	view, err := BuildRouteView(trackedSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if view.Origin.Kind != ports.MarkerOrigin || view.Origin.Label != "Warehouse A" {
		t.Errorf("origin marker wrong: %+v", view.Origin)
	}
	if view.Destination.Kind != ports.MarkerDestination || view.Destination.Label != "Customer B" {
		t.Errorf("destination marker wrong: %+v", view.Destination)
	}
	if len(view.ReferenceLine) != 2 {
		t.Fatalf("expected 2-point reference line, got %d points", len(view.ReferenceLine))
	}
	if view.Path != nil {
		t.Error("path must be absent with no route samples")
	}
	if view.Live != nil {
		t.Error("live marker must be absent with no resolvable position")
	}
}

func TestBuildRouteView_BoundsCoverEndpoints(t *testing.T) {
	view, err := BuildRouteView(trackedSnapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantMin := domain.Coordinate{Lat: -1.5, Lng: 36.0}
	wantMax := domain.Coordinate{Lat: -1.0, Lng: 36.9}
	if view.Bounds.Min != wantMin {
		t.Errorf("bounds min: want %v, got %v", wantMin, view.Bounds.Min)
	}
	if view.Bounds.Max != wantMax {
		t.Errorf("bounds max: want %v, got %v", wantMax, view.Bounds.Max)
	}
}

func TestBuildRouteView_PathAndBoundsWithSamples(t *testing.T) {
	snap := trackedSnapshot()
	now := time.Now()
	snap.Route = []domain.RouteSample{
		sample(-1.1, 36.2, now.Add(-2*time.Minute)),
		sample(-1.8, 36.5, now.Add(-time.Minute)), // south of both endpoints
		sample(-1.3, 37.1, now),                   // east of both endpoints
	}

	view, err := BuildRouteView(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(view.Path) != 3 {
		t.Fatalf("expected 3-point path, got %d", len(view.Path))
	}
	// Supplied order is the path order.
	if view.Path[0] != snap.Route[0].Position || view.Path[2] != snap.Route[2].Position {
		t.Error("path must preserve supplied sample order")
	}

	if view.Bounds.Min.Lat != -1.8 {
		t.Errorf("bounds must include the southernmost sample, got min lat %v", view.Bounds.Min.Lat)
	}
	if view.Bounds.Max.Lng != 37.1 {
		t.Errorf("bounds must include the easternmost sample, got max lng %v", view.Bounds.Max.Lng)
	}

	if view.Live == nil {
		t.Fatal("expected a live marker from the last sample")
	}
	if view.Live.Position != snap.Route[2].Position {
		t.Errorf("live marker: want %v, got %v", snap.Route[2].Position, view.Live.Position)
	}
}

func TestBuildRouteView_SingleSampleHasNoPath(t *testing.T) {
	snap := trackedSnapshot()
	snap.Route = []domain.RouteSample{sample(-1.1, 36.2, time.Now())}

	view, err := BuildRouteView(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Path != nil {
		t.Error("a single sample must not produce a polyline")
	}
	if view.Live == nil {
		t.Error("a single sample still resolves the live marker")
	}
}

func TestBuildRouteView_InsufficientData(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.TrackingSnapshot)
	}{
		{"NaN origin", func(s *domain.TrackingSnapshot) { s.Origin.Lat = math.NaN() }},
		{"infinite destination", func(s *domain.TrackingSnapshot) { s.Destination.Lng = math.Inf(1) }},
		{"origin out of range", func(s *domain.TrackingSnapshot) { s.Origin.Lat = 123 }},
	}

	for _, tc := range cases {
		snap := trackedSnapshot()
		tc.mutate(snap)
		if _, err := BuildRouteView(snap); !errors.Is(err, domain.ErrInsufficientData) {
			t.Errorf("%s: expected ErrInsufficientData, got %v", tc.name, err)
		}
	}

	if _, err := BuildRouteView(nil); !errors.Is(err, domain.ErrInsufficientData) {
		t.Errorf("nil snapshot: expected ErrInsufficientData, got %v", err)
	}
}

func TestBuildRouteView_UnknownStatusFallsBackToPendingStyle(t *testing.T) {
	snap := trackedSnapshot()
	snap.Status = domain.ShipmentStatus("returned_to_sender")

	view, err := BuildRouteView(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := domain.StyleFor(domain.StatusPending); view.Style != want {
		t.Errorf("unknown status style: want %v, got %v", want, view.Style)
	}
}
