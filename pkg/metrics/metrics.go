// Package metrics exposes Prometheus metrics for the club event engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clubxp"

// Registry holds only this package's collectors, without the default Go
// runtime collectors.
var Registry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

var factory = promauto.With(Registry)

var (
	joins = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrollment",
		Name:      "joins_total",
		Help:      "Join attempts by result (joined, already_joined, full).",
	}, []string{"result"})

	leaves = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrollment",
		Name:      "leaves_total",
		Help:      "Participant rows removed by leave.",
	})

	invitations = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "interclub",
		Name:      "invitation_changes_total",
		Help:      "Invitation state changes by action (invited, accepted, declined).",
	}, []string{"action"})

	completions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "lifecycle",
		Name:      "completions_total",
		Help:      "Completion submissions by outcome code.",
	}, []string{"outcome"})

	xpAwarded = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "lifecycle",
		Name:      "xp_pool",
		Help:      "Pool size of completed events by event type.",
		Buckets:   []float64{0, 100, 150, 200, 300, 500, 600, 1000, 2000, 5000},
	}, []string{"type"})

	uploadFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "uploads",
		Name:      "failures_total",
		Help:      "Proof photos that failed to upload and were skipped.",
	})

	notificationFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "notifications",
		Name:      "failures_total",
		Help:      "Notifications the sink failed to deliver.",
	})
)

func RecordJoin(result string) { joins.WithLabelValues(result).Inc() }

func RecordLeave() { leaves.Inc() }

func RecordInvitations(action string, n int) {
	if n > 0 {
		invitations.WithLabelValues(action).Add(float64(n))
	}
}

// RecordCompletion counts one submission; outcome is "submitted" or an error code.
func RecordCompletion(outcome string) { completions.WithLabelValues(outcome).Inc() }

func ObservePool(eventType string, pool int) {
	xpAwarded.WithLabelValues(eventType).Observe(float64(pool))
}

func RecordUploadFailure() { uploadFailures.Inc() }

func RecordNotificationFailure() { notificationFailures.Inc() }

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
