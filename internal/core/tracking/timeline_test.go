package tracking

import (
	"testing"
	"time"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
)

func TestDeriveTimeline_PendingShipment(t *testing.T) {
	snap := &domain.TrackingSnapshot{
		Status:    domain.StatusPending,
		CreatedAt: time.Now(),
	}

	steps := DeriveTimeline(snap)
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}

	created := steps[0]
	if !created.Completed || !created.Active {
		t.Errorf("Created must be completed+active, got completed=%v active=%v", created.Completed, created.Active)
	}
	for _, s := range steps[1:] {
		if s.Completed || s.Active {
			t.Errorf("step %q must be pending, got completed=%v active=%v", s.Label, s.Completed, s.Active)
		}
	}
}

func TestDeriveTimeline_InTransit(t *testing.T) {
	now := time.Now()
	assigned := now.Add(-2 * time.Hour)
	pickedUp := now.Add(-time.Hour)
	snap := &domain.TrackingSnapshot{
		Status:     domain.StatusInTransit,
		CreatedAt:  now.Add(-3 * time.Hour),
		AssignedAt: &assigned,
		PickedUpAt: &pickedUp,
	}

	steps := DeriveTimeline(snap)

	if !steps[0].Completed || steps[0].Active {
		t.Error("Created must be completed and not active")
	}
	if !steps[1].Completed || steps[1].Active {
		t.Error("Assigned must be completed and not active")
	}
	if !steps[2].Completed || !steps[2].Active {
		t.Error("In Transit must be completed and active")
	}
	if steps[3].Completed || steps[3].Active {
		t.Error("Delivered must still be pending")
	}
	if steps[2].Timestamp == nil || !steps[2].Timestamp.Equal(pickedUp) {
		t.Errorf("In Transit timestamp: want %v, got %v", pickedUp, steps[2].Timestamp)
	}
}

func TestDeriveTimeline_DeliveredNeverActive(t *testing.T) {
	now := time.Now()
	assigned := now.Add(-3 * time.Hour)
	pickedUp := now.Add(-2 * time.Hour)
	delivered := now.Add(-time.Hour)
	snap := &domain.TrackingSnapshot{
		Status:      domain.StatusDelivered,
		CreatedAt:   now.Add(-4 * time.Hour),
		AssignedAt:  &assigned,
		PickedUpAt:  &pickedUp,
		DeliveredAt: &delivered,
	}

	steps := DeriveTimeline(snap)

	if !steps[3].Completed {
		t.Error("Delivered must be completed")
	}
	if steps[3].Active {
		t.Error("Delivered is terminal and must never be active")
	}
	for _, s := range steps {
		if s.Active {
			t.Errorf("no step may be active for a delivered shipment, %q is", s.Label)
		}
	}
}

// A cancelled shipment is rendered by the general rule; the caller shows the
// cancelled indicator separately. The permissive result is intentional.
func TestDeriveTimeline_CancelledFollowsGeneralRule(t *testing.T) {
	now := time.Now()
	assigned := now.Add(-time.Hour)
	snap := &domain.TrackingSnapshot{
		Status:     domain.StatusCancelled,
		CreatedAt:  now.Add(-2 * time.Hour),
		AssignedAt: &assigned,
	}

	steps := DeriveTimeline(snap)

	if !steps[0].Completed || !steps[1].Completed {
		t.Error("timestamped steps stay completed for a cancelled shipment")
	}
	for _, s := range steps {
		if s.Active {
			t.Errorf("no milestone matches cancelled, %q must not be active", s.Label)
		}
	}
}

func TestDeriveTimeline_NilSnapshot(t *testing.T) {
	if steps := DeriveTimeline(nil); steps != nil {
		t.Errorf("expected nil timeline for nil snapshot, got %v", steps)
	}
}
