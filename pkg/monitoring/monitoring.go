package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sales_atlas_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sales_atlas_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	DashboardRecomputes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sales_atlas_dashboard_recomputes_total",
			Help: "Number of times the derived dashboard views were recomputed",
		},
	)

	ChartRenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sales_atlas_chart_render_duration_seconds",
			Help:    "Duration of chart rendering in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"chart"},
	)
)

func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordChartRender(chart string, duration time.Duration) {
	ChartRenderDuration.WithLabelValues(chart).Observe(duration.Seconds())
}
