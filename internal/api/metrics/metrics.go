// Package metrics defines and registers all custom Prometheus metrics for
// the client management API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "clientmgmt"

// ── Payment metrics ──────────────────────────────────────────────────────────

// PaymentsRecordedTotal counts recorded payments.
// Label:
//   - method: "bank_transfer", "cash", or "check"
var PaymentsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payments_recorded_total",
		Help:      "Total number of payments recorded, by method.",
	},
	[]string{"method"},
)

// StatusTransitionsTotal counts automatic project status transitions.
// Label:
//   - direction: "finished" (budget reached) or "reverted" (payment deleted)
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of automatic project status transitions.",
	},
	[]string{"direction"},
)

// ── Portal metrics ───────────────────────────────────────────────────────────

// PortalLookupsTotal counts unauthenticated portal token lookups.
// Label:
//   - result: "ok" or "not_found" (unknown and disabled tokens alike)
var PortalLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "portal_lookups_total",
		Help:      "Total number of portal token lookups, by result.",
	},
	[]string{"result"},
)

// ── Invoice metrics ──────────────────────────────────────────────────────────

// InvoiceUploadsTotal counts invoice file uploads that reached the blob store.
var InvoiceUploadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "invoice_uploads_total",
		Help:      "Total number of invoice files uploaded.",
	},
)

// ── Store queue metrics ──────────────────────────────────────────────────────

// RegisterQueueDepth exposes the store queue's pending task count as a gauge.
// Call once at startup with the live queue's Depth method.
func RegisterQueueDepth(depth func() int) {
	promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_queue_depth",
			Help:      "Current number of store operations waiting for dispatch.",
		},
		func() float64 { return float64(depth()) },
	)
}
