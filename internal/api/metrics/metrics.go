// Package metrics defines and registers all custom Prometheus metrics
// for the applicant registry API. It is the single source of truth for
// metric names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "applicant_registry"

// ── Intake metrics ────────────────────────────────────────────────────────────

// RegistrationsTotal counts applicant submissions by outcome.
// Label:
//   - result: "created", "validation_error", "duplicate", "file_rejected", "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of applicant submissions, by outcome.",
	},
	[]string{"result"},
)

// UploadsRejectedTotal counts uploaded files rejected before commit.
// Label:
//   - reason: "media_type" or "too_large"
var UploadsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_rejected_total",
		Help:      "Total number of uploaded files rejected, by reason.",
	},
	[]string{"reason"},
)

// ── Query metrics ─────────────────────────────────────────────────────────────

// SearchesTotal counts search requests that executed (non-empty query).
var SearchesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Total number of applicant searches executed.",
	},
)

// CVDownloadsTotal counts successful CV downloads.
var CVDownloadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cv_downloads_total",
		Help:      "Total number of CV files streamed to administrators.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid", "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of administrator login attempts, by outcome.",
	},
	[]string{"result"},
)
