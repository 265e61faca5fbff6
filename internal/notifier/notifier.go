package notifier

import (
	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/match"
)

// Notifier defines a high-level interface for sending notifications about business events.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// For finished matches
	SendResultNotification(rec *match.Match, homeName, awayName string, dryRun bool) error
	// For the season leaderboard
	SendLeaderboard(stats []club.SeasonPlayerStats, dryRun bool) error
}
