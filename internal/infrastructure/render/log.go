// Package render contains host-facing sinks for route views.
package render

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/shiptrace/tracking-engine/internal/core/ports"
)

// LogSurface is a rendering surface that writes a compact summary of each
// route view to the structured log. It stands in for a map widget in headless
// deployments and doubles as a debugging aid.
type LogSurface struct {
	log  zerolog.Logger
	once sync.Once
}

func NewLogSurface(log zerolog.Logger) *LogSurface {
	return &LogSurface{log: log}
}

// Render logs the view's markers and geometry sizes. Initialisation happens
// on the first call and is idempotent.
func (s *LogSurface) Render(view ports.RouteView) error {
	s.once.Do(func() {
		s.log.Debug().Msg("render surface initialised")
	})

	ev := s.log.Info().
		Float64("origin_lat", view.Origin.Position.Lat).
		Float64("origin_lng", view.Origin.Position.Lng).
		Float64("destination_lat", view.Destination.Position.Lat).
		Float64("destination_lng", view.Destination.Position.Lng).
		Int("path_points", len(view.Path)).
		Str("status_label", view.Style.Label)
	if view.Live != nil {
		ev = ev.
			Float64("live_lat", view.Live.Position.Lat).
			Float64("live_lng", view.Live.Position.Lng)
	}
	ev.Msg("route view rendered")
	return nil
}
