package fixtures

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for fixtures.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Status tracks a fixture through its lifecycle.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusPlayed    Status = "PLAYED"
)

// Fixture is one scheduled pairing in a league round.
type Fixture struct {
	ID         string    `json:"id"`
	Round      int       `json:"round"`
	HomeClubID int       `json:"home_club_id"`
	AwayClubID int       `json:"away_club_id"`
	Status     Status    `json:"status"`
	MatchID    *string   `json:"match_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
