// Package metrics defines and registers all custom Prometheus metrics for the
// tracking engine. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ── Refresh metrics ───────────────────────────────────────────────────────────

// RefreshesTotal counts snapshot refresh attempts.
// Label:
//   - result: "ok" or "error"
var RefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "refreshes_total",
		Help:      "Total number of snapshot refresh attempts, by result.",
	},
	[]string{"result"},
)

// RefreshDuration measures how long a single snapshot fetch takes.
var RefreshDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Duration of snapshot fetches, from request to decoded snapshot.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ActiveWatchSessions tracks the current number of open watch sessions.
var ActiveWatchSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_watch_sessions",
		Help:      "Current number of open shipment watch sessions.",
	},
)

// ── Estimation metrics ────────────────────────────────────────────────────────

// EstimatesPreviewedTotal counts cost previews computed for the creation form.
// Label:
//   - result: "ok" or "insufficient_data"
var EstimatesPreviewedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "estimates_previewed_total",
		Help:      "Total number of cost preview computations, by result.",
	},
	[]string{"result"},
)

// GeocodeRequestsTotal counts location-picker geocoding requests.
// Label:
//   - result: "ok" or "error"
var GeocodeRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_requests_total",
		Help:      "Total number of address geocoding requests, by result.",
	},
	[]string{"result"},
)
