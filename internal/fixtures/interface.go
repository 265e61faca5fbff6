package fixtures

// FixtureStore defines the interface for scheduling and resolving
// league rounds.
type FixtureStore interface {
	// CreateRound pairs the given clubs in order and schedules them as
	// the next round. With an odd club count the last club gets a bye.
	CreateRound(clubIDs []int) ([]Fixture, error)
	GetRound(round int) ([]Fixture, error)
	GetPendingFixtures() ([]Fixture, error)
	MarkPlayed(fixtureID, matchID string) error
}
