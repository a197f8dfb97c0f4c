// Package metrics expose les collecteurs Prometheus de l'API.
//
// Les métriques sont servies sur /metrics au format texte Prometheus:
//
//	curl http://127.0.0.1:8080/metrics
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anime_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "anime_api_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "anime_api_dataset_load_duration_seconds",
			Help:    "Time spent reading and decoding the dataset file",
			Buckets: prometheus.DefBuckets,
		},
	)

	DatasetLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "anime_api_dataset_load_errors_total",
			Help: "Total number of failed dataset loads",
		},
	)

	QueryOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "anime_api_query_outcomes_total",
			Help: "Query results by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
)

func RecordHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func RecordDatasetLoad(d time.Duration, err error) {
	DatasetLoadDuration.Observe(d.Seconds())
	if err != nil {
		DatasetLoadErrors.Inc()
	}
}

func RecordQueryOutcome(operation, outcome string) {
	QueryOutcomes.WithLabelValues(operation, outcome).Inc()
}
