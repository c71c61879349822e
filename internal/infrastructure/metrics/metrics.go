// Package metrics expone contadores Prometheus de producción, faltantes y HTTP.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

// Metrics agrupa los collectors de la aplicación sobre un registry propio.
// Un *Metrics nil es válido: todos los métodos son no-op.
type Metrics struct {
	registry *prometheus.Registry

	productionRuns     *prometheus.CounterVec
	unitsProduced      *prometheus.CounterVec
	shortages          *prometheus.CounterVec
	materialDebits     prometheus.Counter
	httpRequestsTotal  *prometheus.CounterVec
	httpRequestSeconds *prometheus.HistogramVec
}

// New registra los collectors con el prefijo dado (ej. "erp").
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		productionRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_production_runs_total",
			Help: "Corridas de producción por resultado",
		}, []string{"result"}),
		unitsProduced: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_production_units_total",
			Help: "Unidades de producto terminado fabricadas",
		}, []string{"product_code"}),
		shortages: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_material_shortages_total",
			Help: "Faltantes de material detectados al debitar",
		}, []string{"material"}),
		materialDebits: f.NewCounter(prometheus.CounterOpts{
			Name: prefix + "_material_debits_total",
			Help: "Débitos de material confirmados",
		}),
		httpRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"method", "path", "status"}),
		httpRequestSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
	}
}

// Resultados de una corrida de producción.
const (
	ResultCompleted = "completed"
	ResultShortage  = "shortage"
	ResultError     = "error"
)

// ProductionRun cuenta una corrida con su resultado y, si se completó, las unidades fabricadas.
func (m *Metrics) ProductionRun(result, productCode string, qty decimal.Decimal) {
	if m == nil {
		return
	}
	m.productionRuns.WithLabelValues(result).Inc()
	if result == ResultCompleted {
		m.unitsProduced.WithLabelValues(productCode).Add(qty.InexactFloat64())
	}
}

// Shortage cuenta un faltante del material.
func (m *Metrics) Shortage(material string) {
	if m == nil {
		return
	}
	m.shortages.WithLabelValues(material).Inc()
}

// MaterialDebited cuenta n líneas debitadas.
func (m *Metrics) MaterialDebited(n int) {
	if m == nil {
		return
	}
	m.materialDebits.Add(float64(n))
}

// ObserveHTTP registra una petición atendida. path debe ser la ruta registrada, no la URL cruda.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestSeconds.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry devuelve el registry subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
