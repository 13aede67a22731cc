// Package metrics defines all custom Prometheus metrics for the deposit
// ledger API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "deposit"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Labels:
//   - result: "success" or "failure"
//   - path: "directory" or "privileged"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result and path.",
	},
	[]string{"result", "path"},
)

// LockoutsTotal counts login attempts rejected by an active lockout.
var LockoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lockout_rejections_total",
		Help:      "Total number of login attempts rejected by an active lockout.",
	},
)

// ── Ledger metrics ────────────────────────────────────────────────────────────

// DocumentsCreatedTotal counts documents accepted into the active set.
// Label:
//   - category: the document category
var DocumentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_created_total",
		Help:      "Total number of documents created, by category.",
	},
	[]string{"category"},
)

// DocumentsIssuedTotal counts documents moved to the archive.
var DocumentsIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_issued_total",
		Help:      "Total number of documents issued, by category.",
	},
	[]string{"category"},
)

// DocumentsDeletedTotal counts active documents removed permanently.
var DocumentsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_deleted_total",
		Help:      "Total number of active documents deleted.",
	},
)

// CapacityRejectionsTotal counts creates refused because a category was full.
// Label:
//   - category: the full category
var CapacityRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "capacity_rejections_total",
		Help:      "Total number of creates rejected by category capacity limits.",
	},
	[]string{"category"},
)

// ── Dispatcher metrics ────────────────────────────────────────────────────────

// EventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
