// Package metrics exposes Prometheus collectors for mission generation.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/vocare/internal/ports/secondary"
)

// Observer implements secondary.GenerationObserver with Prometheus collectors.
type Observer struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	needsLoads  *prometheus.CounterVec
}

var _ secondary.GenerationObserver = (*Observer)(nil)

// NewObserver registers the collectors with reg. Collectors that are already
// registered are reused, so building several observers against one registry
// is safe.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	generations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vocare",
			Subsystem: "missions",
			Name:      "generations_total",
			Help:      "Mission generations by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)
	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vocare",
			Subsystem: "missions",
			Name:      "generation_duration_seconds",
			Help:      "Time spent waiting on a generative backend.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 12, 16},
		},
		[]string{"backend"},
	)
	needsLoads := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vocare",
			Subsystem: "needs",
			Name:      "loads_total",
			Help:      "Needs board loads during generation by result.",
		},
		[]string{"result"},
	)

	var err error
	if generations, err = register(reg, generations); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if needsLoads, err = register(reg, needsLoads); err != nil {
		return nil, err
	}

	return &Observer{generations: generations, duration: duration, needsLoads: needsLoads}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// ObserveGeneration records one resolver outcome.
func (o *Observer) ObserveGeneration(backend, outcome string, elapsed time.Duration) {
	if o == nil {
		return
	}
	o.generations.WithLabelValues(backend, outcome).Inc()
	o.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
}

// ObserveNeedsLoad records whether the needs board could be read.
func (o *Observer) ObserveNeedsLoad(ok bool) {
	if o == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	o.needsLoads.WithLabelValues(result).Inc()
}
