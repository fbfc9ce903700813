package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// ComparisonCount counts finished comparisons by final status
	ComparisonCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "plagiarism_comparisons_total",
			Help: "Total number of document comparisons",
		},
		[]string{"status"},
	)

	// ComparisonDuration measures end-to-end comparison duration
	ComparisonDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "plagiarism_comparison_duration_seconds",
			Help:    "Document comparison duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// DocumentsIndexed counts repository documents stored by the index pipeline
	DocumentsIndexed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plagiarism_documents_indexed_total",
			Help: "Total number of documents indexed into the repository",
		},
	)

	// IndexFailures counts upload events that could not be indexed
	IndexFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plagiarism_index_failures_total",
			Help: "Total number of failed index attempts",
		},
	)
)

// InitPrometheus registers all collectors with the default registry
func InitPrometheus() {
	prometheus.MustRegister(ComparisonCount)
	prometheus.MustRegister(ComparisonDuration)
	prometheus.MustRegister(DocumentsIndexed)
	prometheus.MustRegister(IndexFailures)
}
