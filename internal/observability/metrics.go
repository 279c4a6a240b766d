package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels shared by the pipeline counters.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
	OutcomeSkipped  = "skipped"
	OutcomeDropped  = "dropped"
)

// Metrics exposes Prometheus collectors for the HTTP surface and the intake pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	quotes         *prometheus.CounterVec
	geoLookups     *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	registry       prometheus.Gatherer
}

// NewMetrics registers collectors with reg. A fresh registry is used when reg is nil.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leads",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Subsystem: "intake",
			Name:      "quotes_total",
			Help:      "Quote submissions by outcome",
		}, []string{"outcome"}),
		geoLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Subsystem: "geo",
			Name:      "lookups_total",
			Help:      "IP-to-country lookups by outcome",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leads",
			Subsystem: "notify",
			Name:      "deliveries_total",
			Help:      "Operator notifications by outcome",
		}, []string{"outcome"}),
		registry: reg,
	}
	reg.MustRegister(m.requests, m.requestLatency, m.quotes, m.geoLookups, m.notifications)
	return m
}

// Gatherer returns the registry backing these collectors.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// RecordRequest counts a served request and its latency.
func (m *Metrics) RecordRequest(route, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route, method).Observe(duration.Seconds())
}

// RecordQuote counts a quote submission outcome.
func (m *Metrics) RecordQuote(outcome string) {
	if m == nil {
		return
	}
	m.quotes.WithLabelValues(outcome).Inc()
}

// RecordGeoLookup counts a geo lookup outcome.
func (m *Metrics) RecordGeoLookup(outcome string) {
	if m == nil {
		return
	}
	m.geoLookups.WithLabelValues(outcome).Inc()
}

// RecordNotification counts a notification outcome.
func (m *Metrics) RecordNotification(outcome string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(outcome).Inc()
}
