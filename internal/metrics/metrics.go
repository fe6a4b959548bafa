// Package metrics exposes Prometheus instrumentation for the auth service.
package metrics

import (
	"net/http"
	"time"

	"github.com/felipefaria2026/roleta-pro-ia-v2/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Auth operations.
const (
	OpRegister = "register"
	OpLogin    = "login"
	OpLogout   = "logout"
)

// Outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the service collectors.
type Metrics struct {
	registry     *prometheus.Registry
	authTotal    *prometheus.CounterVec
	hashDuration *prometheus.HistogramVec
}

// New creates a registry with process and Go runtime collectors plus the
// auth collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		authTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roleta",
			Subsystem: "auth",
			Name:      "operations_total",
			Help:      "Auth operations by outcome.",
		}, []string{"operation", "outcome"}),
		hashDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "roleta",
			Subsystem: "auth",
			Name:      "password_hash_seconds",
			Help:      "Time spent hashing or verifying passwords.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2},
		}, []string{"op"}),
	}
	registry.MustRegister(m.authTotal, m.hashDuration)
	return m
}

// Observe counts one auth operation.
func (m *Metrics) Observe(operation, outcome string) {
	m.authTotal.WithLabelValues(operation, outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// InstrumentHasher wraps a PasswordHasher with latency observation.
func (m *Metrics) InstrumentHasher(h service.PasswordHasher) service.PasswordHasher {
	return &instrumentedHasher{next: h, duration: m.hashDuration}
}

type instrumentedHasher struct {
	next     service.PasswordHasher
	duration *prometheus.HistogramVec
}

func (h *instrumentedHasher) Hash(password string) (string, error) {
	defer h.observe("hash", time.Now())
	return h.next.Hash(password)
}

func (h *instrumentedHasher) Verify(password, digest string) bool {
	defer h.observe("verify", time.Now())
	return h.next.Verify(password, digest)
}

func (h *instrumentedHasher) VerifyDummy(password string) {
	defer h.observe("verify", time.Now())
	h.next.VerifyDummy(password)
}

func (h *instrumentedHasher) observe(op string, start time.Time) {
	h.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
