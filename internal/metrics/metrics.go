// Package metrics exposes Prometheus collectors for the SSH server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lander"

// Metrics holds the server collectors. A nil *Metrics is valid and records nothing,
// so local play can share code paths with the server.
type Metrics struct {
	registry       *prometheus.Registry
	flights        *prometheus.CounterVec
	flightTicks    prometheus.Histogram
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
}

// New creates collectors registered on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		flights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_total",
			Help:      "Finished flights by outcome",
		}, []string{"outcome"}),
		flightTicks: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "flight_ticks",
			Help:      "Simulation ticks from launch to touchdown",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 8),
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "Number of connected SSH sessions",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_total",
			Help:      "Total number of SSH sessions served",
		}),
	}

	m.registry.MustRegister(
		m.flights,
		m.flightTicks,
		m.sessionsActive,
		m.sessionsTotal,
	)

	return m
}

// FlightFinished records a finished flight.
func (m *Metrics) FlightFinished(outcome string, ticks int) {
	if m == nil {
		return
	}
	m.flights.WithLabelValues(outcome).Inc()
	m.flightTicks.Observe(float64(ticks))
}

// SessionStarted marks a new SSH session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// SessionEnded marks an SSH session as closed.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// Handler returns the /metrics HTTP handler.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// NewServer returns an HTTP server exposing the collectors at /metrics.
func (m *Metrics) NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}
