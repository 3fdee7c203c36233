// Package metrics defines and registers the custom Prometheus metrics of the
// service registry. It is the single source of truth for metric names, labels
// and help strings. HTTP request metrics come from echoprometheus instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sutram"

// Import results.
const (
	ResultOK          = "ok"
	ResultUnsupported = "unsupported"
	ResultUnreadable  = "unreadable"
	ResultError       = "error"
)

// ── Import metrics ────────────────────────────────────────────────────────────

// ImportsTotal counts upload attempts.
// Labels:
//   - format: "csv", "xls", "xlsx" or "unknown"
//   - result: ResultOK, ResultUnsupported, ResultUnreadable or ResultError
var ImportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imports_total",
		Help:      "Total number of file imports, by format and result.",
	},
	[]string{"format", "result"},
)

// ImportedRowsTotal counts records written by successful imports.
var ImportedRowsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "imported_rows_total",
		Help:      "Total number of records created by file imports.",
	},
	[]string{"format"},
)

// ImportDuration measures decode plus insert time of successful imports.
var ImportDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_duration_seconds",
		Help:      "Duration of successful imports from decode to commit.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"format"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login form submissions.
// Label:
//   - result: "ok", "invalid" or "incomplete"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts accounts created through the web UI.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created.",
	},
)

// RecordsDeletedTotal counts records removed by bulk deletes.
var RecordsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of service records removed by bulk delete.",
	},
)
