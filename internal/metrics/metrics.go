package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics methods are safe on a nil receiver so components can run
// without a registry.
type Metrics struct {
	reg *prometheus.Registry

	deviceEvents    *prometheus.CounterVec
	serviceRequests *prometheus.CounterVec
	dndDivergence   prometheus.Counter
	evictions       prometheus.Counter
	outboxDropped   prometheus.Counter
	retryDepth      prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	return &Metrics{
		reg: reg,
		deviceEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "obedio_device_events_total",
			Help: "Device press events by ingestion outcome.",
		}, []string{"outcome"}),
		serviceRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "obedio_service_requests_total",
			Help: "Service requests created, by priority.",
		}, []string{"priority"}),
		dndDivergence: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "obedio_dnd_divergence_total",
			Help: "DND toggles that updated the location but not the guest.",
		}),
		evictions: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "obedio_broadcast_evictions_total",
			Help: "Broadcast subscribers dropped for falling behind.",
		}),
		outboxDropped: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "obedio_transport_outbox_dropped_total",
			Help: "Outbound device messages dropped from a full outbox.",
		}),
		retryDepth: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "obedio_retry_queue_depth",
			Help: "Service request creations waiting for the store.",
		}),
	}
}

func (m *Metrics) DeviceEvent(outcome string) {
	if m == nil {
		return
	}
	m.deviceEvents.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ServiceRequestCreated(priority string) {
	if m == nil {
		return
	}
	m.serviceRequests.WithLabelValues(priority).Inc()
}

func (m *Metrics) DNDDivergence() {
	if m == nil {
		return
	}
	m.dndDivergence.Inc()
}

func (m *Metrics) BroadcastEviction(string) {
	if m == nil {
		return
	}
	m.evictions.Inc()
}

func (m *Metrics) OutboxDropped() {
	if m == nil {
		return
	}
	m.outboxDropped.Inc()
}

func (m *Metrics) RetryDepth(n int) {
	if m == nil {
		return
	}
	m.retryDepth.Set(float64(n))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}
