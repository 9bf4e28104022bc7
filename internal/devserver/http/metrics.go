package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aussiebroadwan/eventcart/pkg/cartsdk"
	"github.com/aussiebroadwan/eventcart/pkg/httpx"
)

// Metrics holds the devserver collectors. Each Router owns its registry so
// tests can build many routers in one process.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ordersTotal     prometheus.Counter
	revenueTotal    prometheus.Counter
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventcart",
				Subsystem: "devserver",
				Name:      "http_requests_total",
				Help:      "HTTP requests served, by route pattern and status code.",
			},
			[]string{"route", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "eventcart",
				Subsystem: "devserver",
				Name:      "http_request_duration_seconds",
				Help:      "Time spent serving HTTP requests.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ordersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventcart",
			Subsystem: "devserver",
			Name:      "orders_placed_total",
			Help:      "Orders created by checkout.",
		}),
		revenueTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "eventcart",
			Subsystem: "devserver",
			Name:      "order_revenue_total",
			Help:      "Sum of order totals at checkout.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.ordersTotal,
		m.revenueTotal,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Middleware records request counts and latency labelled by the matched
// route pattern. It must be the innermost middleware in front of the
// ServeMux, which sets r.Pattern on the request it is handed.
func (m *Metrics) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

func (m *Metrics) orderPlaced(o cartsdk.Order) {
	if m == nil {
		return
	}
	m.ordersTotal.Inc()
	m.revenueTotal.Add(o.Total.InexactFloat64())
}

type statusRecorder struct {
	http.ResponseWriter

	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
