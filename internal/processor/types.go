package processor

import (
	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/fixtures"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/dmoller/touchline/internal/pubsub"
)

// Processor handles the business logic of resolving scheduled fixtures:
// simulate, persist, fold season stats, publish and notify.
type Processor struct {
	store    club.ClubStore
	fixtures fixtures.FixtureStore
	engine   Engine
	notifier notifier.Notifier
	metrics  metrics.Metrics
	lifetime metrics.MetricsStore
	pubsub   pubsub.PubSubClient
}
