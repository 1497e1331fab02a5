package tracking

import (
	"time"

	"github.com/shiptrace/tracking-engine/internal/core/domain"
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// Timeline milestone labels, in canonical order.
const (
	StepCreated   = "Created"
	StepAssigned  = "Assigned"
	StepInTransit = "In Transit"
	StepDelivered = "Delivered"
)

// DeriveTimeline maps a snapshot's status and timestamps onto the four
// canonical milestones. A step is completed when its timestamp is present and
// active when the snapshot's current status matches it; Delivered is terminal
// and never active.
//
// Cancelled shipments are not special-cased here — the caller renders a
// separate cancelled indicator, and the general rule is deliberately
// permissive about whatever completed/active combination falls out.
func DeriveTimeline(snap *domain.TrackingSnapshot) []ports.TimelineStep {
	if snap == nil {
		return nil
	}

	var createdAt *time.Time
	if !snap.CreatedAt.IsZero() {
		t := snap.CreatedAt
		createdAt = &t
	}

	return []ports.TimelineStep{
		{
			Label:     StepCreated,
			Timestamp: createdAt,
			Completed: createdAt != nil,
			Active:    snap.Status == domain.StatusPending,
		},
		{
			Label:     StepAssigned,
			Timestamp: snap.AssignedAt,
			Completed: snap.AssignedAt != nil,
			Active:    snap.Status == domain.StatusAssigned,
		},
		{
			Label:     StepInTransit,
			Timestamp: snap.PickedUpAt,
			Completed: snap.PickedUpAt != nil,
			Active:    snap.Status == domain.StatusInTransit,
		},
		{
			Label:     StepDelivered,
			Timestamp: snap.DeliveredAt,
			Completed: snap.DeliveredAt != nil,
			Active:    false,
		},
	}
}
