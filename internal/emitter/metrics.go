package emitter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	payloadsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otlp_probe_payloads_total",
			Help: "Total number of payloads sent, by outcome",
		},
		[]string{"type", "status"},
	)
	bytesSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otlp_probe_bytes_total",
			Help: "Total payload bytes delivered to the collector",
		},
		[]string{"type"},
	)
	sendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otlp_probe_send_latency_seconds",
			Help:    "Send round-trip latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"type"},
	)
)
