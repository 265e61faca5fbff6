package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	matchesSimulated    int
	goalsScored         int
	injuriesGenerated   int
	cardsIssued         int
	simulationDurations []float64
	slackNotifSent      int
	slackNotifFailed    int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		simulationDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesSimulated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesSimulated++
}

func (m *Mock) AddGoals(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goalsScored += count
}

func (m *Mock) IncInjuries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.injuriesGenerated++
}

func (m *Mock) IncCardsIssued() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cardsIssued++
}

func (m *Mock) ObserveSimulationDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.simulationDurations = append(m.simulationDurations, seconds)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// MatchesSimulated returns the number of times IncMatchesSimulated was called.
func (m *Mock) MatchesSimulated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesSimulated
}

// GoalsScored returns the accumulated goal count.
func (m *Mock) GoalsScored() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.goalsScored
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}

// InjuriesGenerated returns the number of times IncInjuries was called.
func (m *Mock) InjuriesGenerated() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.injuriesGenerated
}

// CardsIssued returns the number of times IncCardsIssued was called.
func (m *Mock) CardsIssued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cardsIssued
}

// SimulationDurations returns the recorded simulation durations.
func (m *Mock) SimulationDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.simulationDurations))
	copy(out, m.simulationDurations)
	return out
}

var _ MetricsStore = (*MockStore)(nil)

// MockStore is an in-memory MetricsStore for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMockStore creates a new mock MetricsStore.
func NewMockStore() *MockStore {
	return &MockStore{counts: make(map[string]int)}
}

func (m *MockStore) Increment(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
}

func (m *MockStore) GetAll() (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.counts))
	for k, v := range m.counts {
		out[k] = v
	}
	return out, nil
}
