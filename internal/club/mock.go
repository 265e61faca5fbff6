package club

import (
	"sync"

	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
)

var _ ClubStore = (*MockClubStore)(nil)

// MockClubStore is a mock implementation of ClubStore for testing.
// It is safe for concurrent use.
type MockClubStore struct {
	mu sync.Mutex

	// Spies for method calls
	GetSquadFunc             func(clubID int) (football.Squad, error)
	GetClubFunc              func(clubID int) (*Info, error)
	GetAllClubsFunc          func() ([]Info, error)
	GetMatchFunc             func(matchID string) (*match.Match, error)
	GetAllMatchesFunc        func() ([]*match.Match, error)
	GetSeasonStatsFunc       func() ([]SeasonPlayerStats, error)
	GetSeasonStatsByNameFunc func(playerName string) (*SeasonPlayerStats, error)
	SaveMatchFunc            func(rec *match.Match) error
	ApplySeasonStatsFunc     func(rec *match.Match) error

	// Call records
	UpsertClubCalls       []Info
	UpsertPlayersCalls    []UpsertPlayersCall
	SaveTacticsCalls      []SaveTacticsCall
	SaveMatchCalls        []*match.Match
	ApplySeasonStatsCalls []*match.Match
	ClearCalls            int
	ClearMatchCalls       []string
}

// UpsertPlayersCall holds the arguments for a call to UpsertPlayers.
type UpsertPlayersCall struct {
	ClubID  int
	Players []*football.Player
}

// SaveTacticsCall holds the arguments for a call to SaveTactics.
type SaveTacticsCall struct {
	ClubID  int
	Tactics football.Tactics
}

// NewMock creates a new mock ClubStore.
func NewMock() *MockClubStore {
	return &MockClubStore{}
}

// Reset clears all call records.
func (m *MockClubStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = nil
	m.UpsertPlayersCalls = nil
	m.SaveTacticsCalls = nil
	m.SaveMatchCalls = nil
	m.ApplySeasonStatsCalls = nil
	m.ClearCalls = 0
	m.ClearMatchCalls = nil
}

func (m *MockClubStore) UpsertClub(info Info) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertClubCalls = append(m.UpsertClubCalls, info)
	return nil
}

func (m *MockClubStore) GetClub(clubID int) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetClubFunc != nil {
		return m.GetClubFunc(clubID)
	}
	return &Info{ID: clubID, Name: "Mock Club"}, nil
}

func (m *MockClubStore) GetAllClubs() ([]Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllClubsFunc != nil {
		return m.GetAllClubsFunc()
	}
	return nil, nil
}

func (m *MockClubStore) UpsertPlayers(clubID int, players []*football.Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, UpsertPlayersCall{ClubID: clubID, Players: players})
	return nil
}

func (m *MockClubStore) SaveTactics(clubID int, tactics football.Tactics) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveTacticsCalls = append(m.SaveTacticsCalls, SaveTacticsCall{ClubID: clubID, Tactics: tactics})
	return nil
}

func (m *MockClubStore) GetSquad(clubID int) (football.Squad, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSquadFunc != nil {
		return m.GetSquadFunc(clubID)
	}
	return football.Squad{Club: football.Club{ID: clubID}, Players: map[int]*football.Player{}}, nil
}

func (m *MockClubStore) SaveMatch(rec *match.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveMatchCalls = append(m.SaveMatchCalls, rec)
	if m.SaveMatchFunc != nil {
		return m.SaveMatchFunc(rec)
	}
	return nil
}

func (m *MockClubStore) GetMatch(matchID string) (*match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetMatchFunc != nil {
		return m.GetMatchFunc(matchID)
	}
	return &match.Match{ID: matchID}, nil
}

func (m *MockClubStore) GetAllMatches() ([]*match.Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc()
	}
	return nil, nil
}

func (m *MockClubStore) ApplySeasonStats(rec *match.Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApplySeasonStatsCalls = append(m.ApplySeasonStatsCalls, rec)
	if m.ApplySeasonStatsFunc != nil {
		return m.ApplySeasonStatsFunc(rec)
	}
	return nil
}

func (m *MockClubStore) GetSeasonStats() ([]SeasonPlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSeasonStatsFunc != nil {
		return m.GetSeasonStatsFunc()
	}
	return nil, nil
}

func (m *MockClubStore) GetSeasonStatsByName(playerName string) (*SeasonPlayerStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetSeasonStatsByNameFunc != nil {
		return m.GetSeasonStatsByNameFunc(playerName)
	}
	return &SeasonPlayerStats{PlayerName: playerName}, nil
}

func (m *MockClubStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
}

func (m *MockClubStore) ClearMatch(matchID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearMatchCalls = append(m.ClearMatchCalls, matchID)
}
