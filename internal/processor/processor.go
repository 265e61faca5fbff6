package processor

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/fixtures"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/dmoller/touchline/internal/pubsub"
)

// New creates a new Processor.
func New(store club.ClubStore, fixtureStore fixtures.FixtureStore, engine Engine, notifier notifier.Notifier, metrics metrics.Metrics, lifetime metrics.MetricsStore, pubsub pubsub.PubSubClient) *Processor {
	return &Processor{
		store:    store,
		fixtures: fixtureStore,
		engine:   engine,
		notifier: notifier,
		metrics:  metrics,
		lifetime: lifetime,
		pubsub:   pubsub,
	}
}

// SimulateRound resolves every pending fixture with the statistical
// engine and records the results. Fixtures whose squads cannot be
// loaded are skipped, not failed; they stay pending for the next round.
func (p *Processor) SimulateRound(date time.Time, dryRun bool) ([]*match.Match, error) {
	log.Info("Starting round simulation...")
	pending, err := p.fixtures.GetPendingFixtures()
	if err != nil {
		return nil, fmt.Errorf("failed to get pending fixtures: %w", err)
	}

	if len(pending) == 0 {
		log.Info("No pending fixtures to simulate.")
		return nil, nil
	}

	log.Info("Found pending fixtures", "count", len(pending))
	var results []*match.Match
	for _, f := range pending {
		home, err := p.store.GetSquad(f.HomeClubID)
		if err != nil {
			log.Error("Failed to load home squad, skipping fixture", "error", err, "fixtureID", f.ID, "clubID", f.HomeClubID)
			continue
		}
		away, err := p.store.GetSquad(f.AwayClubID)
		if err != nil {
			log.Error("Failed to load away squad, skipping fixture", "error", err, "fixtureID", f.ID, "clubID", f.AwayClubID)
			continue
		}

		startTime := time.Now()
		rec := p.engine.Run(home, away, date)
		p.metrics.ObserveSimulationDuration(time.Since(startTime).Seconds())

		if err := p.RecordResult(rec, dryRun); err != nil {
			log.Error("Failed to record match result", "error", err, "matchID", rec.ID)
			continue
		}

		if !dryRun {
			if err := p.fixtures.MarkPlayed(f.ID, rec.ID); err != nil {
				log.Error("Failed to mark fixture as played", "error", err, "fixtureID", f.ID)
			}
		}
		results = append(results, rec)
	}

	if !dryRun && len(results) > 0 {
		if err := p.pubsub.SendMessage(pubsub.EventRoundSimulated, results); err != nil {
			log.Error("Failed to publish round-simulated event", "error", err)
		}
	}

	log.Info("Round simulation finished.", "matches", len(results))
	return results, nil
}

// RecordResult persists a finished match, folds its player statistics
// into the season tallies and sends the full-time notification. The
// live engine funnels its finished matches through here too, so both
// simulation paths hit the same bookkeeping.
func (p *Processor) RecordResult(rec *match.Match, dryRun bool) error {
	homeScore, awayScore := rec.Score()

	if dryRun {
		log.Info("[Dry Run] Would record match result", "matchID", rec.ID, "home", homeScore, "away", awayScore)
	} else {
		if err := p.store.SaveMatch(rec); err != nil {
			return fmt.Errorf("failed to save match: %w", err)
		}
		if err := p.store.ApplySeasonStats(rec); err != nil {
			return fmt.Errorf("failed to apply season stats: %w", err)
		}
		p.lifetime.Increment("matches_simulated")
		if err := p.pubsub.SendMessage(pubsub.EventMatchFinished, rec); err != nil {
			log.Error("Failed to publish match-finished event", "error", err, "matchID", rec.ID)
		}
	}

	p.metrics.IncMatchesSimulated()
	p.metrics.AddGoals(homeScore + awayScore)
	for range rec.Injuries {
		p.metrics.IncInjuries()
	}
	for range rec.Cards {
		p.metrics.IncCardsIssued()
	}

	homeName := p.clubName(rec.HomeClubID)
	awayName := p.clubName(rec.AwayClubID)
	if err := p.notifier.SendResultNotification(rec, homeName, awayName, dryRun); err != nil {
		log.Error("Failed to send result notification", "error", err, "matchID", rec.ID)
	}
	return nil
}

// SendLeaderboard fetches the season stats and posts the leaderboard.
func (p *Processor) SendLeaderboard(dryRun bool) error {
	stats, err := p.store.GetSeasonStats()
	if err != nil {
		return fmt.Errorf("failed to get season stats: %w", err)
	}
	return p.notifier.SendLeaderboard(stats, dryRun)
}

func (p *Processor) clubName(clubID int) string {
	info, err := p.store.GetClub(clubID)
	if err != nil {
		log.Error("Failed to look up club name", "error", err, "clubID", clubID)
		return fmt.Sprintf("Club %d", clubID)
	}
	return info.Name
}
