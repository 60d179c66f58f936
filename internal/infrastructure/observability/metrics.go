package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
)

var _ inventory.Metrics = (*Metrics)(nil)

// Metrics contadores del motor de consumo y de la capa HTTP.
type Metrics struct {
	Registry *prometheus.Registry

	consumptions   *prometheus.CounterVec
	consumedItems  *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	lowStockAlerts *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// NewMetrics registra los colectores en un registro propio (más los de Go y proceso).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		consumptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeterias",
			Subsystem: "inventory",
			Name:      "consumptions_total",
			Help:      "Lotes de consumo confirmados por origen (order, production).",
		}, []string{"source"}),
		consumedItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeterias",
			Subsystem: "inventory",
			Name:      "consumed_ingredients_total",
			Help:      "Ingredientes descontados en lotes confirmados.",
		}, []string{"source"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeterias",
			Subsystem: "inventory",
			Name:      "consumption_rejections_total",
			Help:      "Lotes de consumo rechazados por motivo.",
		}, []string{"source", "reason"}),
		lowStockAlerts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeterias",
			Subsystem: "inventory",
			Name:      "low_stock_alerts_total",
			Help:      "Alertas de stock emitidas por nivel (low, exhausted).",
		}, []string{"level"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cafeterias",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP por método, ruta y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "cafeterias",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latencia de peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.consumptions, m.consumedItems, m.rejections, m.lowStockAlerts,
		m.httpRequests, m.httpDuration,
	)
	return m
}

func (m *Metrics) ConsumptionCommitted(source string, ingredients int) {
	m.consumptions.WithLabelValues(source).Inc()
	m.consumedItems.WithLabelValues(source).Add(float64(ingredients))
}

func (m *Metrics) ConsumptionRejected(source, reason string) {
	m.rejections.WithLabelValues(source, reason).Inc()
}

func (m *Metrics) LowStockRaised(level string) {
	m.lowStockAlerts.WithLabelValues(level).Inc()
}

// ObserveHTTP registra una petición atendida.
func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
