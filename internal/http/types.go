package http

import (
	"net/http"
	"sync"

	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/config"
	"github.com/dmoller/touchline/internal/fixtures"
	"github.com/dmoller/touchline/internal/live"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/dmoller/touchline/internal/processor"
	"github.com/dmoller/touchline/internal/pubsub"
	"github.com/gorilla/mux"
)

// Server wires the stores, the simulation engines and the notification
// stack behind the HTTP API. Live matches in progress are held in
// memory; only a finalized match reaches the database.
type Server struct {
	Store          club.ClubStore
	Fixtures       fixtures.FixtureStore
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Lifetime       metrics.MetricsStore
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	PubSub         pubsub.PubSubClient
	Router         *mux.Router

	handler http.Handler

	// mu guards the live registry and serializes commands against each
	// live.State, which expects one mutation in flight at a time.
	mu   sync.Mutex
	live map[string]*live.State
}
