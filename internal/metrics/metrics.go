// Package metrics provides Prometheus metrics for the news API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModerationTotal counts moderation decisions by resulting status.
	ModerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noticiario",
			Name:      "moderation_total",
			Help:      "Total number of moderation decisions",
		},
		[]string{"status"},
	)

	// InteractionsTotal counts interaction attempts by type and outcome.
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "noticiario",
			Name:      "interactions_total",
			Help:      "Total number of interaction attempts",
		},
		[]string{"type", "outcome"},
	)

	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "noticiario",
			Name:      "article_views_total",
			Help:      "Total number of approved article detail fetches",
		},
	)

	// RequestDuration measures HTTP handling time.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "noticiario",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func RecordModeration(status string) {
	ModerationTotal.WithLabelValues(status).Inc()
}

func RecordInteraction(kind, outcome string) {
	InteractionsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordView() {
	ArticleViewsTotal.Inc()
}

func RecordRequest(method, route, status string, seconds float64) {
	RequestDuration.WithLabelValues(method, route, status).Observe(seconds)
}
