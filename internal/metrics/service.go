package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	TimerActions       *prometheus.CounterVec
	Substitutions      prometheus.Counter
	Saves              prometheus.Counter
	Loads              prometheus.Counter
	ReportDuration     prometheus.Histogram
	StartupTimeSeconds prometheus.Gauge
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TimerActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sideline_timer_actions_total",
			Help: "The total number of timer actions, labelled by action.",
		}, []string{"action"}),
		Substitutions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sideline_substitutions_total",
			Help: "The total number of player substitutions made.",
		}),
		Saves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sideline_saves_total",
			Help: "The total number of game snapshots saved.",
		}),
		Loads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sideline_loads_total",
			Help: "The total number of game snapshots loaded.",
		}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sideline_report_duration_seconds",
			Help:    "The duration of fairness report generation.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sideline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TimerActions,
		s.Substitutions,
		s.Saves,
		s.Loads,
		s.ReportDuration,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTimerAction(action string) {
	s.TimerActions.WithLabelValues(action).Inc()
}

func (s *Service) IncSubstitutions() {
	s.Substitutions.Inc()
}

func (s *Service) IncSaves() {
	s.Saves.Inc()
}

func (s *Service) IncLoads() {
	s.Loads.Inc()
}

func (s *Service) ObserveReportDuration(duration float64) {
	s.ReportDuration.Observe(duration)
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
