package fixtures

import "sync"

var _ FixtureStore = (*MockFixtureStore)(nil)

// MockFixtureStore is a mock implementation of FixtureStore for testing.
// It is safe for concurrent use.
type MockFixtureStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateRoundFunc        func(clubIDs []int) ([]Fixture, error)
	GetRoundFunc           func(round int) ([]Fixture, error)
	GetPendingFixturesFunc func() ([]Fixture, error)
	MarkPlayedFunc         func(fixtureID, matchID string) error

	// Call records
	CreateRoundCalls [][]int
	MarkPlayedCalls  []MarkPlayedCall
}

// MarkPlayedCall holds the arguments for a call to MarkPlayed.
type MarkPlayedCall struct {
	FixtureID string
	MatchID   string
}

// NewMock creates a new mock FixtureStore.
func NewMock() *MockFixtureStore {
	return &MockFixtureStore{}
}

func (m *MockFixtureStore) CreateRound(clubIDs []int) ([]Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateRoundCalls = append(m.CreateRoundCalls, clubIDs)
	if m.CreateRoundFunc != nil {
		return m.CreateRoundFunc(clubIDs)
	}
	return nil, nil
}

func (m *MockFixtureStore) GetRound(round int) ([]Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetRoundFunc != nil {
		return m.GetRoundFunc(round)
	}
	return nil, nil
}

func (m *MockFixtureStore) GetPendingFixtures() ([]Fixture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetPendingFixturesFunc != nil {
		return m.GetPendingFixturesFunc()
	}
	return nil, nil
}

func (m *MockFixtureStore) MarkPlayed(fixtureID, matchID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MarkPlayedCalls = append(m.MarkPlayedCalls, MarkPlayedCall{FixtureID: fixtureID, MatchID: matchID})
	if m.MarkPlayedFunc != nil {
		return m.MarkPlayedFunc(fixtureID, matchID)
	}
	return nil
}
