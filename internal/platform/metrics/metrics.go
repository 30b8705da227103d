package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HealthScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pethealth_score",
			Help:    "Distribution of computed pet health scores",
			Buckets: []float64{10, 20, 30, 40, 50, 60, 75, 90, 100},
		},
	)

	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pethealth_evaluations_total",
			Help: "Health evaluations by source (api, batch, cli)",
		},
		[]string{"source"},
	)

	GapsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pethealth_gaps_total",
			Help: "Health gaps detected by rule",
		},
		[]string{"rule"},
	)

	StatusMismatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pethealth_status_mismatch_total",
			Help: "Pets marked healthy whose data suggests otherwise",
		},
	)

	CacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pethealth_cache_requests_total",
			Help: "Health report cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	NotificationsDelivered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pethealth_notifications_delivered_total",
			Help: "Notification deliveries by result (ok, error)",
		},
		[]string{"result"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pethealth_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		HealthScore,
		EvaluationsTotal,
		GapsTotal,
		StatusMismatchTotal,
		CacheRequests,
		NotificationsDelivered,
		HTTPRequestDuration,
	)
}

func Handler() http.Handler {
	return promhttp.Handler()
}
