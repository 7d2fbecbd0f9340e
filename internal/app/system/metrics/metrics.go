// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyBuckets = []float64{
	0.001, // 1ms
	0.005, // 5ms
	0.01,  // 10ms
	0.025, // 25ms
	0.05,  // 50ms
	0.1,   // 100ms
	0.25,  // 250ms
	0.5,   // 500ms
	1.0,   // 1s
	2.5,   // 2.5s
	5.0,   // 5s
	10.0,  // 10s
}

var (
	// HTTPRequestDuration tracks request latency by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affiliatehub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// CampaignViewDuration tracks how long one campaign read-model takes to assemble.
	CampaignViewDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affiliatehub_campaignview_duration_seconds",
			Help:    "Duration of campaign read-model assembly in seconds",
			Buckets: latencyBuckets,
		},
		[]string{"status"}, // success or failure
	)

	// CampaignViewDegraded counts influencer entries emitted without a profile.
	CampaignViewDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affiliatehub_campaignview_degraded_total",
			Help: "Influencer entries returned without profile data because the lookup failed",
		},
	)
)

// RecordCampaignView records the duration of one read-model assembly.
func RecordCampaignView(status string, duration time.Duration) {
	CampaignViewDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordDegradedEntry counts one partial influencer entry.
func RecordDegradedEntry() {
	CampaignViewDegraded.Inc()
}

// Middleware observes every request in HTTPRequestDuration. The route label
// is the chi pattern so ids do not explode cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		HTTPRequestDuration.WithLabelValues(r.Method, route, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
	})
}
