package notifier

import (
	"sync"

	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/match"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SendResultNotificationFunc func(rec *match.Match, homeName, awayName string, dryRun bool) error
	SendLeaderboardFunc        func(stats []club.SeasonPlayerStats, dryRun bool) error

	// Call records
	SendResultNotificationCalls []ResultNotificationCall
	SendLeaderboardCalls        [][]club.SeasonPlayerStats
}

// ResultNotificationCall holds the arguments for a call to SendResultNotification.
type ResultNotificationCall struct {
	Match    *match.Match
	HomeName string
	AwayName string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendLeaderboardCalls = nil
}

func (m *Mock) SendResultNotification(rec *match.Match, homeName, awayName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, ResultNotificationCall{Match: rec, HomeName: homeName, AwayName: awayName})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(rec, homeName, awayName, dryRun)
	}
	return nil
}

func (m *Mock) SendLeaderboard(stats []club.SeasonPlayerStats, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, stats)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(stats, dryRun)
	}
	return nil
}
