package handler

import (
	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// getTrackingResponse is the transport envelope around the tracker view. The
// view types carry their own JSON contract; the envelope adds the navigation
// links the dashboard uses.
type getTrackingResponse struct {
	*ports.TrackerView
	Links trackingLinks `json:"_links"`
}

type trackingLinks struct {
	Self    string `json:"self"`
	Watch   string `json:"watch"`
	Refresh string `json:"refresh"`
}

func trackerViewResponse(view *ports.TrackerView) getTrackingResponse {
	base := "/v1/tracking/" + view.ShipmentID
	return getTrackingResponse{
		TrackerView: view,
		Links: trackingLinks{
			Self:    base,
			Watch:   base + "/watch",
			Refresh: base + "/refresh",
		},
	}
}
