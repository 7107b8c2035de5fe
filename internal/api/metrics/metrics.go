// Package metrics defines and registers all custom Prometheus metrics for the
// portal API. It is the single source of truth for metric names, labels, and
// help strings.
//
// Metrics self-register with the default Prometheus registry via promauto at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (failures are not broken down further so
//     the metric cannot be used for username enumeration either)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionCorruptTotal counts session records that failed to decode and were
// treated as absent.
var SessionCorruptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_corrupt_total",
		Help:      "Total number of unparseable session records treated as absent.",
	},
)

// AccessDeniedTotal counts guard denials.
// Label:
//   - reason: "not_logged_in" or "role_mismatch"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of authorization denials, by reason.",
	},
	[]string{"reason"},
)

// ── Search metrics ────────────────────────────────────────────────────────────

// SearchesTotal counts aggregate search dispatches.
// Label:
//   - outcome: "settled", "failed", or "short_circuit" (query under the
//     minimum length, adapters never invoked)
var SearchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of aggregate search operations, by outcome.",
	},
	[]string{"outcome"},
)

// SearchDuration measures one aggregate fan-out end-to-end.
var SearchDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Duration of aggregate search from dispatch to merge.",
		Buckets:   prometheus.DefBuckets,
	},
)

// SearchStaleDiscardsTotal counts in-flight results discarded because a newer
// keystroke superseded their dispatch.
var SearchStaleDiscardsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_stale_discards_total",
		Help:      "Total number of search responses suppressed as stale.",
	},
)

// LiveSearchSessions tracks currently open interactive search sessions.
var LiveSearchSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_search_sessions",
		Help:      "Number of currently open live search sessions.",
	},
)
