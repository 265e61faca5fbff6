package http

import (
	"net/http"

	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/config"
	"github.com/dmoller/touchline/internal/fixtures"
	"github.com/dmoller/touchline/internal/live"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/dmoller/touchline/internal/processor"
	"github.com/dmoller/touchline/internal/pubsub"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewServer(store club.ClubStore, fixtureStore fixtures.FixtureStore, metricsSvc metrics.Metrics, metricsHandler http.Handler, lifetime metrics.MetricsStore, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Fixtures:       fixtureStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Lifetime:       lifetime,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		PubSub:         pubsub,
		Router:         mux.NewRouter(),
		live:           make(map[string]*live.State),
	}

	server.routes()
	server.handler = cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}).Handler(server.Router)
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an
	// authentication middleware.
	s.Router.Handle("/metrics", s.MetricsHandler).Methods(http.MethodGet)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/stats", Chain(s.LifetimeStatsHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware)).Methods(http.MethodPost)

	s.Router.Handle("/clubs", Chain(s.ListClubsHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/matches", Chain(s.ListMatchesHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/matches/{id}", Chain(s.GetMatchHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/standings", Chain(s.SeasonStatsHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/standings/{name}", Chain(s.PlayerSeasonStatsHandler(), paramsMiddleware)).Methods(http.MethodGet)

	s.Router.Handle("/rounds", Chain(s.CreateRoundHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/simulate-round", Chain(s.SimulateRoundHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/notify-leaderboard", Chain(s.NotifyLeaderboardHandler(), paramsMiddleware)).Methods(http.MethodPost)

	s.Router.Handle("/live", Chain(s.CreateLiveMatchHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}", Chain(s.LiveStateHandler(), paramsMiddleware)).Methods(http.MethodGet)
	s.Router.Handle("/live/{id}/tick", Chain(s.TickHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/pause", Chain(s.PauseHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/resume", Chain(s.ResumeHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/substitute", Chain(s.SubstituteHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/mentality", Chain(s.MentalityHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/shout", Chain(s.ShoutHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/instructions", Chain(s.InstructionsHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/dismiss-sub", Chain(s.DismissSubHandler(), paramsMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/live/{id}/finalize", Chain(s.FinalizeHandler(), paramsMiddleware)).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}
