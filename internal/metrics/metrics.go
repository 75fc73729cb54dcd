// Package metrics collects and exposes Prometheus metrics for the
// authentication endpoints.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the HTTP layer uses to record auth events.
type Recorder interface {
	RecordRegister()
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenRejected(reason string)
}

// Collector implements Recorder backed by Prometheus counters.
type Collector struct {
	registers     prometheus.Counter
	loginSuccess  prometheus.Counter
	loginFailure  prometheus.Counter
	tokenRejected *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with the
// given registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registers: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kantorku_register_total",
			Help: "Total number of successful account registrations.",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kantorku_login_success_total",
			Help: "Total number of successful logins.",
		}),
		loginFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kantorku_login_failure_total",
			Help: "Total number of rejected login attempts.",
		}),
		tokenRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kantorku_token_rejected_total",
			Help: "Total number of rejected session tokens by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.registers,
		c.loginSuccess,
		c.loginFailure,
		c.tokenRejected,
	)

	return c
}

// RecordRegister records a successful registration.
func (c *Collector) RecordRegister() {
	c.registers.Inc()
}

// RecordLoginSuccess records a successful login.
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure records a rejected login attempt.
func (c *Collector) RecordLoginFailure() {
	c.loginFailure.Inc()
}

// RecordTokenRejected records a rejected token; reason is one of
// "missing", "expired", or "invalid".
func (c *Collector) RecordTokenRejected(reason string) {
	c.tokenRejected.WithLabelValues(reason).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
