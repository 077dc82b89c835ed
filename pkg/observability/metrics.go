package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rota-robotics/rota/pkg/domain"
)

// Metrics holds the Prometheus instruments for one scheduler instance.
type Metrics struct {
	scheduled   *prometheus.CounterVec
	finished    *prometheus.CounterVec
	interrupted *prometheus.CounterVec
	rejected    *prometheus.CounterVec
	cycles      prometheus.Counter
	active      prometheus.Gauge
}

// NewMetrics creates the instruments and registers them with the given
// registerer. Pass prometheus.DefaultRegisterer for the usual global
// registry, or a private registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		scheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rota_commands_scheduled_total",
			Help: "Total number of commands scheduled",
		}, []string{"command"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rota_commands_finished_total",
			Help: "Total number of commands that finished on their own",
		}, []string{"command"}),
		interrupted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rota_commands_interrupted_total",
			Help: "Total number of commands ended by cancellation or conflict",
		}, []string{"command"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "rota_schedule_rejections_total",
			Help: "Total number of schedule requests dropped by non-interruptible holders",
		}, []string{"command", "holder"}),
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rota_cycles_total",
			Help: "Total number of scheduler cycles run",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "rota_active_commands",
			Help: "Commands in the active set at the end of the last cycle",
		}),
	}
	reg.MustRegister(m.scheduled, m.finished, m.interrupted, m.rejected, m.cycles, m.active)
	return m
}

// Hooks returns lifecycle hooks feeding these metrics, ready to pass to
// the scheduler via WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandScheduled: func(e *domain.CommandEvent) {
			m.scheduled.WithLabelValues(e.Command).Inc()
		},
		OnCommandFinished: func(e *domain.CommandEvent) {
			m.finished.WithLabelValues(e.Command).Inc()
		},
		OnCommandInterrupted: func(e *domain.CommandEvent) {
			m.interrupted.WithLabelValues(e.Command).Inc()
		},
		OnScheduleRejected: func(e *domain.RejectionEvent) {
			m.rejected.WithLabelValues(e.Command, e.Holder).Inc()
		},
		OnCycle: func(e *domain.CycleEvent) {
			m.cycles.Inc()
			m.active.Set(float64(e.Active))
		},
	}
}
