package metrics

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "daybook"

// Metrics owns its registry so tests can build as many as they like.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	advances        *prometheus.CounterVec
	closeReminders  prometheus.Gauge
	reminderFailure prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		advances: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "advanced_total",
			Help:      "Reminder advance attempts by cycle and outcome.",
		}, []string{"cycle", "outcome"}),
		closeReminders: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "close",
			Help:      "Close reminders in the last computed dashboard snapshot.",
		}),
		reminderFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reminders",
			Name:      "invalid_target_total",
			Help:      "Reminders skipped because their stored target date did not parse.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latency,
		m.advances,
		m.closeReminders,
		m.reminderFailure,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAdvance(cycle, outcome string) {
	if m == nil {
		return
	}
	m.advances.WithLabelValues(cycle, outcome).Inc()
}

func (m *Metrics) SetCloseReminders(n int) {
	if m == nil {
		return
	}
	m.closeReminders.Set(float64(n))
}

// MarkCloseRemindersStale sets the close reminders gauge to NaN when the
// snapshot behind it could not be recomputed.
func (m *Metrics) MarkCloseRemindersStale() {
	if m == nil {
		return
	}
	m.closeReminders.Set(math.NaN())
}

func (m *Metrics) AddInvalidTargets(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.reminderFailure.Add(float64(n))
}
