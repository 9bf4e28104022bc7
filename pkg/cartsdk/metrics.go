package cartsdk

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects client-side counters for requests and refresh cycles.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshTotal    *prometheus.CounterVec
	queuedTotal     prometheus.Counter
	replayedTotal   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventcart",
				Subsystem: "sdk",
				Name:      "requests_total",
				Help:      "Requests sent by the SDK, by method and status code.",
			},
			[]string{"method", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eventcart",
				Subsystem: "sdk",
				Name:      "request_duration_seconds",
				Help:      "Round-trip time of SDK requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		refreshTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventcart",
				Subsystem: "sdk",
				Name:      "token_refresh_total",
				Help:      "Token refresh attempts, by result.",
			},
			[]string{"result"},
		),
		queuedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "eventcart",
				Subsystem: "sdk",
				Name:      "requests_queued_total",
				Help:      "Requests suspended while a refresh was in flight.",
			},
		),
		replayedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventcart",
				Subsystem: "sdk",
				Name:      "requests_replayed_total",
				Help:      "Requests re-issued with a refreshed token, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	if reg != nil {
		reg.MustRegister(m.requestsTotal, m.requestDuration, m.refreshTotal, m.queuedTotal, m.replayedTotal)
	}
	return m
}

func (m *Metrics) observeRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, label).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) observeRefresh(result string) {
	if m == nil {
		return
	}
	m.refreshTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) observeQueued() {
	if m == nil {
		return
	}
	m.queuedTotal.Inc()
}

func (m *Metrics) observeReplay(err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.replayedTotal.WithLabelValues(outcome).Inc()
}
