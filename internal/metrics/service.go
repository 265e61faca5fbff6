package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

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
		MatchesSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_matches_simulated_total",
			Help: "The total number of matches resolved by either engine.",
		}),
		GoalsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_goals_scored_total",
			Help: "The total number of goals scored across all simulated matches.",
		}),
		InjuriesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_injuries_generated_total",
			Help: "The total number of injuries generated across all simulated matches.",
		}),
		CardsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_cards_issued_total",
			Help: "The total number of yellow and red cards issued.",
		}),
		SimulationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "touchline_match_simulation_duration_seconds",
			Help:    "The duration of individual match simulations.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "touchline_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "touchline_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.MatchesSimulated,
		s.GoalsScored,
		s.InjuriesGenerated,
		s.CardsIssued,
		s.SimulationDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncMatchesSimulated() {
	s.MatchesSimulated.Inc()
}

func (s *Service) AddGoals(count int) {
	s.GoalsScored.Add(float64(count))
}

func (s *Service) IncInjuries() {
	s.InjuriesGenerated.Inc()
}

func (s *Service) IncCardsIssued() {
	s.CardsIssued.Inc()
}

func (s *Service) ObserveSimulationDuration(seconds float64) {
	s.SimulationDuration.Observe(seconds)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(seconds float64) {
	s.StartupTimeSeconds.Set(seconds)
}
