// Package metrics expone contadores Prometheus del contenedor de estado.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de métricas.
const (
	MetricRemoteErrorsTotal      = "stockrest_remote_errors_total"
	MetricActionsTotal           = "stockrest_actions_total"
	MetricRefreshDurationSeconds = "stockrest_refresh_duration_seconds"
)

// Metrics registro propio para no chocar con el registro global.
type Metrics struct {
	registry        *prometheus.Registry
	remoteErrors    *prometheus.CounterVec
	actions         *prometheus.CounterVec
	refreshDuration prometheus.Histogram
}

// New crea el registro con las métricas del proceso y del runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRemoteErrorsTotal,
			Help: "Errores del almacén remoto por operación.",
		}, []string{"op"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricActionsTotal,
			Help: "Acciones registradas en la auditoría por tipo.",
		}, []string{"action"}),
		refreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRefreshDurationSeconds,
			Help:    "Duración de la recarga completa desde el remoto.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.remoteErrors,
		m.actions,
		m.refreshDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RemoteError cuenta un fallo del remoto en la operación op (ej. "fetch_items").
func (m *Metrics) RemoteError(op string) { m.remoteErrors.WithLabelValues(op).Inc() }

// Action cuenta una entrada de auditoría.
func (m *Metrics) Action(action string) { m.actions.WithLabelValues(action).Inc() }

// ObserveRefresh registra la duración de una recarga.
func (m *Metrics) ObserveRefresh(d time.Duration) { m.refreshDuration.Observe(d.Seconds()) }

// Registry para tests o para registrar colectores adicionales.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler sirve el formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
