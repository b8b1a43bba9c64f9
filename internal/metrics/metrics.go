// Package metrics provides Prometheus metrics for the news aggregator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderFetchTotal counts provider calls by outcome (ok, empty, error).
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsagg",
			Name:      "provider_fetch_total",
			Help:      "Total number of provider fetches",
		},
		[]string{"provider", "status"},
	)

	// ProviderFetchDuration measures provider call latency.
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsagg",
			Name:      "provider_fetch_duration_seconds",
			Help:      "Duration of provider fetches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// IngestItemsTotal counts ingestion candidates by outcome.
	IngestItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsagg",
			Name:      "ingest_items_total",
			Help:      "Ingestion candidates by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendDuration measures recommendation latency by path.
	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsagg",
			Name:      "recommend_duration_seconds",
			Help:      "Duration of recommendation requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	// SummarizerFallbackTotal counts degradations to the extractive summary.
	SummarizerFallbackTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "newsagg",
			Name:      "summarizer_fallback_total",
			Help:      "Summaries produced by the extractive fallback after a backend failure",
		},
	)
)

// RecordFetch records one provider call.
func RecordFetch(provider, status string, seconds float64) {
	ProviderFetchTotal.WithLabelValues(provider, status).Inc()
	ProviderFetchDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordIngest records the outcome of one ingestion candidate.
func RecordIngest(outcome string) {
	IngestItemsTotal.WithLabelValues(outcome).Inc()
}

// RecordRecommend records one recommendation call.
func RecordRecommend(path string, seconds float64) {
	RecommendDuration.WithLabelValues(path).Observe(seconds)
}

// RecordSummarizerFallback records one extractive degradation.
func RecordSummarizerFallback() {
	SummarizerFallbackTotal.Inc()
}
