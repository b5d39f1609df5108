// Package metrics expõe coletores Prometheus da aplicação.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

// Metrics agrupa os coletores em um registry próprio
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	auditEntries        *prometheus.CounterVec
	sideChannelFailures *prometheus.CounterVec
	streamClients       prometheus.Gauge
}

// New cria e registra os coletores
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		auditEntries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_entries_total",
			Help:      "Audit log entries written by action.",
		}, []string{"action"}),
		sideChannelFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_channel_failures_total",
			Help:      "Best-effort side effects (audit, mail, realtime) that failed.",
		}, []string{"channel"}),
		streamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "activity_stream_clients",
			Help:      "Connected activity stream websocket clients.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.auditEntries,
		m.sideChannelFailures,
		m.streamClients,
	)
	return m
}

// Registry retorna o registry usado pelos coletores
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler expõe as métricas no formato de exposição do Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest registra uma requisição HTTP concluída
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AuditRecorded conta uma entrada de auditoria gravada
func (m *Metrics) AuditRecorded(action string) {
	m.auditEntries.WithLabelValues(action).Inc()
}

// SideChannelFailed conta uma falha de efeito colateral best-effort
func (m *Metrics) SideChannelFailed(channel string) {
	m.sideChannelFailures.WithLabelValues(channel).Inc()
}

// SetStreamClients atualiza o número de clientes do feed em tempo real
func (m *Metrics) SetStreamClients(n int) {
	m.streamClients.Set(float64(n))
}
