package domain

// ShipmentStatus represents the lifecycle state of a shipment as reported by
// the backend. Monotonic in practice (server-enforced), but the engine must
// render correctly even when an out-of-order or unknown status is observed.
type ShipmentStatus string

const (
	StatusPending   ShipmentStatus = "pending"
	StatusAssigned  ShipmentStatus = "assigned"
	StatusInTransit ShipmentStatus = "in_transit"
	StatusDelivered ShipmentStatus = "delivered"
	StatusCancelled ShipmentStatus = "cancelled"
)

// Known reports whether the status is one of the canonical values.
func (s ShipmentStatus) Known() bool {
	switch s {
	case StatusPending, StatusAssigned, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further status change is expected.
func (s ShipmentStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// StatusStyle is the presentation tag (label + colour token) a status maps to.
// The colour is a semantic token, not a rendering-technology value.
type StatusStyle struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// styleByStatus is the fixed enum-to-style table.
var styleByStatus = map[ShipmentStatus]StatusStyle{
	StatusPending:   {Label: "Pending", Color: "amber"},
	StatusAssigned:  {Label: "Assigned", Color: "blue"},
	StatusInTransit: {Label: "In Transit", Color: "indigo"},
	StatusDelivered: {Label: "Delivered", Color: "green"},
	StatusCancelled: {Label: "Cancelled", Color: "red"},
}

// StyleFor returns the presentation style for a status. Unknown statuses fall
// back to the pending style; this is a deliberate defensive default, not an
// error.
func StyleFor(s ShipmentStatus) StatusStyle {
	if style, ok := styleByStatus[s]; ok {
		return style
	}
	return styleByStatus[StatusPending]
}
