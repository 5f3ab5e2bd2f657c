// Package observability exposes Prometheus metrics for the planning engine,
// wired in through the engine's lifecycle hooks.
package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Metrics holds the collectors for one planner instance.
type Metrics struct {
	stepVisits       *prometheus.CounterVec
	stepDuration     *prometheus.HistogramVec
	stepErrors       *prometheus.CounterVec
	providerFailures *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with the given
// registerer. Pass prometheus.DefaultRegisterer for the process-wide
// registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		stepVisits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itinero_step_visits_total",
				Help: "Total number of pipeline step executions",
			},
			[]string{"step"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "itinero_step_duration_seconds",
				Help: "Duration of pipeline step executions",
			},
			[]string{"step"},
		),
		stepErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itinero_step_errors_total",
				Help: "Total number of failed step executions",
			},
			[]string{"step"},
		),
		providerFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "itinero_provider_failures_total",
				Help: "Total number of collaborator failures, by provider and recovery",
			},
			[]string{"provider", "recovered"},
		),
	}
	reg.MustRegister(m.stepVisits, m.stepDuration, m.stepErrors, m.providerFailures)
	return m
}

// Hooks returns lifecycle hooks that feed the collectors. Chain them with
// other hooks via Combine when logging hooks are also installed.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, ev *domain.StepEvent) {
			m.stepVisits.WithLabelValues(string(ev.Step)).Inc()
		},
		OnStepLeave: func(_ context.Context, ev *domain.StepEvent) {
			m.stepDuration.WithLabelValues(string(ev.Step)).Observe(ev.Duration.Seconds())
			if ev.Err != nil {
				m.stepErrors.WithLabelValues(string(ev.Step)).Inc()
			}
		},
		OnProviderError: func(_ context.Context, ev *domain.ProviderEvent) {
			recovered := "false"
			if ev.Recovered {
				recovered = "true"
			}
			m.providerFailures.WithLabelValues(ev.Provider, recovered).Inc()
		},
	}
}

// Combine merges hook sets; every non-nil callback fires in order.
func Combine(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range hooks {
		h := h
		if h.OnStepEnter != nil {
			prev := out.OnStepEnter
			out.OnStepEnter = func(ctx context.Context, ev *domain.StepEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				h.OnStepEnter(ctx, ev)
			}
		}
		if h.OnStepLeave != nil {
			prev := out.OnStepLeave
			out.OnStepLeave = func(ctx context.Context, ev *domain.StepEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				h.OnStepLeave(ctx, ev)
			}
		}
		if h.OnProviderError != nil {
			prev := out.OnProviderError
			out.OnProviderError = func(ctx context.Context, ev *domain.ProviderEvent) {
				if prev != nil {
					prev(ctx, ev)
				}
				h.OnProviderError(ctx, ev)
			}
		}
	}
	return out
}
