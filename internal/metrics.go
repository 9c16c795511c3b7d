package internal

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"itam-service/internal/models"
	"itam-service/internal/repository"
)

const metricsNamespace = "itam"

var httpLabels = []string{"method", "route", "code"}

// Metrics owns a private Prometheus registry with the ops HTTP metrics and,
// when built with a store, gauges describing the register.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds the registry. A nil store registers the HTTP metrics only.
func NewMetrics(store *repository.Store) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests served by the ops endpoint.",
		}, httpLabels),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent serving ops requests.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, httpLabels),
	}
	m.registry.MustRegister(m.requests, m.duration)
	if store != nil {
		m.registry.MustRegister(newRegisterCollector(store))
	}
	return m
}

// Middleware records one observation per request, labelled with the chi
// route pattern so ids in the path do not explode cardinality.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			labels := prometheus.Labels{
				"method": r.Method,
				"route":  routePattern(r),
				"code":   strconv.Itoa(rec.code),
			}
			m.requests.With(labels).Inc()
			m.duration.With(labels).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return r.URL.Path
	}
	if p := rctx.RoutePattern(); p != "" {
		return p
	}
	return r.URL.Path
}

// registerCollector reads the repositories on every scrape.
type registerCollector struct {
	store *repository.Store

	assets        *prometheus.Desc
	unread        *prometheus.Desc
	discrepancies *prometheus.Desc
	expiring      *prometheus.Desc
}

func newRegisterCollector(store *repository.Store) *registerCollector {
	return &registerCollector{
		store: store,
		assets: prometheus.NewDesc("itam_assets",
			"Assets in the register by status.", []string{"status"}, nil),
		unread: prometheus.NewDesc("itam_notifications_unread",
			"Unread notifications.", nil, nil),
		discrepancies: prometheus.NewDesc("itam_discrepancies_open",
			"Open inventory discrepancies by severity.", []string{"severity"}, nil),
		expiring: prometheus.NewDesc("itam_contracts_expiring",
			"Contracts in expiring status.", nil, nil),
	}
}

func (c *registerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.assets
	ch <- c.unread
	ch <- c.discrepancies
	ch <- c.expiring
}

func (c *registerCollector) Collect(ch chan<- prometheus.Metric) {
	for status, n := range c.store.Assets.GetStatusDistribution() {
		ch <- prometheus.MustNewConstMetric(c.assets, prometheus.GaugeValue, float64(n), status)
	}
	ch <- prometheus.MustNewConstMetric(c.unread, prometheus.GaugeValue, float64(c.store.Notifications.UnreadCount()))
	for severity, n := range c.store.Inventory.OpenBySeverity() {
		ch <- prometheus.MustNewConstMetric(c.discrepancies, prometheus.GaugeValue, float64(n), severity)
	}
	expiring := c.store.Contracts.GetStatusDistribution()[string(models.ContractStatusExpiring)]
	ch <- prometheus.MustNewConstMetric(c.expiring, prometheus.GaugeValue, float64(expiring))
}
