// Package metrics exposes Prometheus metrics for outbound API calls.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the HTTP client reports to. Status 0 means the request
// never got a response.
type Recorder interface {
	RecordRequest(method string, status int, duration time.Duration)
}

// Nop ignores everything.
type Nop struct{}

func (Nop) RecordRequest(string, int, time.Duration) {}

type Collector struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers it on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "posclient_requests_total",
			Help: "Outbound API requests by method and HTTP status (0 = transport failure).",
		}, []string{"method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "posclient_request_duration_seconds",
			Help:    "Outbound API request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}

	reg.MustRegister(c.requests, c.latency)
	return c
}

func (c *Collector) RecordRequest(method string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method).Observe(duration.Seconds())
}

// Handler serves gatherer in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
