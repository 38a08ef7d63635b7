package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GatewayMetrics instruments calls against the remote document-graph API.
type GatewayMetrics struct {
	registry *prometheus.Registry

	GatewayCalls  *prometheus.CounterVec
	GatewayErrors *prometheus.CounterVec
	SSEClients    prometheus.Gauge
}

// NewGatewayMetrics builds the metric set on a private registry.
func NewGatewayMetrics() *GatewayMetrics {
	registry := prometheus.NewRegistry()

	m := &GatewayMetrics{
		registry: registry,
		GatewayCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_gateway_calls_total",
			Help: "Remote document-graph API calls by operation.",
		}, []string{"operation"}),
		GatewayErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dochub_gateway_errors_total",
			Help: "Remote document-graph API failures by operation and kind.",
		}, []string{"operation", "kind"}),
		SSEClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dochub_sse_clients",
			Help: "Currently connected SSE clients.",
		}),
	}

	registry.MustRegister(m.GatewayCalls, m.GatewayErrors, m.SSEClients)
	return m
}

// RecordCall counts one gateway call.
func (m *GatewayMetrics) RecordCall(operation string) {
	m.GatewayCalls.WithLabelValues(operation).Inc()
}

// RecordError counts one classified gateway failure.
func (m *GatewayMetrics) RecordError(operation, kind string) {
	m.GatewayErrors.WithLabelValues(operation, kind).Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func (m *GatewayMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
