// Package metrics counts widget activity in a per-widget Prometheus registry.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Collector holds the widget's metrics
type Collector struct {
	registry *prometheus.Registry

	actions     *prometheus.CounterVec
	signins     prometheus.Counter
	signinCount prometheus.Gauge
}

// New registers the widget metrics on reg. A nil reg gets a fresh registry.
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		actions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signinwidget_actions_total",
				Help: "Total number of widget actions",
			},
			[]string{"action", "status"},
		),
		signins: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "signinwidget_signins_total",
				Help: "Total number of recorded sign-ins",
			},
		),
		signinCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "signinwidget_signin_count",
				Help: "Sign-in count of the current session",
			},
		),
	}
}

// ObserveAction counts one action with its outcome
func (c *Collector) ObserveAction(action, status string) {
	c.actions.WithLabelValues(action, status).Inc()
}

// ObserveSignIn records a sign-in that brought the session to count
func (c *Collector) ObserveSignIn(count int) {
	c.signins.Inc()
	c.signinCount.Set(float64(count))
}

// Registry returns the registry the metrics live in
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteText dumps the registry in the Prometheus text format
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encoding metrics: %w", err)
		}
	}
	return nil
}
