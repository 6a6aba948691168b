// Package metrics owns the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/domain/models"
)

const namespace = "storefront"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	productsServed *prometheus.CounterVec
	orderRelay     *prometheus.CounterVec
	tunnel         *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"method", "route"},
		),
		productsServed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "products_served_total",
				Help:      "Product listings served, by source.",
			},
			[]string{"source"},
		),
		orderRelay: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_relay_total",
				Help:      "Order relay attempts, by outcome.",
			},
			[]string{"outcome"},
		),
		tunnel: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tunnel_envelopes_total",
				Help:      "Telemetry envelopes received by the tunnel, by outcome.",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.productsServed, m.orderRelay, m.tunnel)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func (m *Metrics) ProductsServed(source models.ProductSource) {
	m.productsServed.WithLabelValues(string(source)).Inc()
}

func (m *Metrics) OrderRelayed(outcome string) {
	m.orderRelay.WithLabelValues(outcome).Inc()
}

func (m *Metrics) EnvelopeHandled(outcome string) {
	m.tunnel.WithLabelValues(outcome).Inc()
}
