// Package metrics exposes Prometheus instrumentation for the recommender.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IndexBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courserec_index_build_duration_seconds",
			Help:    "Time spent loading and fitting the course index",
			Buckets: prometheus.DefBuckets,
		},
	)

	IndexCourses = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "courserec_index_courses",
			Help: "Number of courses in the published index",
		},
	)

	IndexSwaps = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "courserec_index_swaps_total",
			Help: "Number of times a new index was published",
		},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courserec_recommendations_total",
			Help: "Recommendation requests by difficulty band and outcome",
		},
		[]string{"band", "outcome"}, // outcome: "ok", "empty", "degraded"
	)

	RecommendationSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courserec_recommendation_size",
			Help:    "Number of courses returned per recommendation",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20, 50},
		},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "courserec_recommendation_duration_seconds",
			Help:    "Time spent computing one recommendation",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "courserec_http_requests_total",
			Help: "HTTP requests by route and status code",
		},
		[]string{"route", "code"},
	)
)

// ObserveRecommendation records one recommendation outcome.
func ObserveRecommendation(band, outcome string, size int, d time.Duration) {
	Recommendations.WithLabelValues(band, outcome).Inc()
	RecommendationSize.Observe(float64(size))
	RecommendationDuration.Observe(d.Seconds())
}

// ObserveIndex records a freshly built index.
func ObserveIndex(buildTime time.Duration) {
	IndexBuildDuration.Observe(buildTime.Seconds())
}

// ObserveSwap records the publication of an index with the given size.
func ObserveSwap(courses int) {
	IndexCourses.Set(float64(courses))
	IndexSwaps.Inc()
}
