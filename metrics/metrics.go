// Package metrics exposes Prometheus counters for the portal.
// File: metrics/metrics.go
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitportal", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "path", "status"})
	RateLimitRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "recruitportal", Name: "rate_limit_rejections_total", Help: "Requests rejected by the rate limiter",
	}, []string{"action"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "recruitportal", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, RateLimitRejections, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
