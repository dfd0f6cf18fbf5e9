package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the storefront's Prometheus collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	CartMutations         *prometheus.CounterVec
	CartItemsAdded        prometheus.Counter
	RecommendationsServed *prometheus.CounterVec
	Checkouts             *prometheus.CounterVec
}

// New creates a Metrics instance with every collector registered
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: registry}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdpro",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
	m.HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tdpro",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path"},
	)
	m.CartMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdpro",
			Name:      "cart_mutations_total",
			Help:      "Successful cart mutations by operation",
		},
		[]string{"operation"},
	)
	m.CartItemsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tdpro",
		Name:      "cart_items_added_total",
		Help:      "Total quantity added to carts",
	})
	m.RecommendationsServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdpro",
			Name:      "recommendations_served_total",
			Help:      "Suggestions returned, by scope (add or cart)",
		},
		[]string{"scope"},
	)
	m.Checkouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tdpro",
			Name:      "checkouts_total",
			Help:      "Checkouts by outcome",
		},
		[]string{"outcome"},
	)

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CartMutations,
		m.CartItemsAdded,
		m.RecommendationsServed,
		m.Checkouts,
	)
	return m
}

// Registry exposes the underlying registry (tests gather from it)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordHTTPRequest records one finished request
func (m *Metrics) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordCartMutation counts an add or clear; qty is the quantity added
func (m *Metrics) RecordCartMutation(operation string, qty int) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(operation).Inc()
	if qty > 0 {
		m.CartItemsAdded.Add(float64(qty))
	}
}

// RecordRecommendations counts suggestions handed to a view
func (m *Metrics) RecordRecommendations(scope string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecommendationsServed.WithLabelValues(scope).Add(float64(n))
}

// RecordCheckout counts a checkout attempt by outcome
func (m *Metrics) RecordCheckout(outcome string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(outcome).Inc()
}
