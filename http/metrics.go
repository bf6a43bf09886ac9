package http

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors reported by Server.
type Metrics struct {
	Requests        *prometheus.CounterVec
	ConvertLatency  prometheus.Histogram
	SkeletonBytes   prometheus.Histogram
	RejectedOrigins prometheus.Counter
}

// NewMetrics creates the server collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "markdownizer_http_requests_total",
				Help: "Total HTTP requests by route and status code",
			},
			[]string{"route", "status"},
		),
		ConvertLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "markdownizer_convert_latency_seconds",
				Help:    "Skeleton conversion latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		SkeletonBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "markdownizer_skeleton_bytes",
				Help:    "Size of accepted HTML skeletons in bytes",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 6),
			},
		),
		RejectedOrigins: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "markdownizer_rejected_origins_total",
				Help: "Total requests rejected because of their Origin header",
			},
		),
	}
	reg.MustRegister(m.Requests, m.ConvertLatency, m.SkeletonBytes, m.RejectedOrigins)
	return m
}

func (m *Metrics) observeRequest(route string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

func (m *Metrics) observeConvert(size int, d time.Duration) {
	if m == nil {
		return
	}
	m.SkeletonBytes.Observe(float64(size))
	m.ConvertLatency.Observe(d.Seconds())
}

func (m *Metrics) observeRejectedOrigin() {
	if m == nil {
		return
	}
	m.RejectedOrigins.Inc()
}
