package club

import (
	"database/sql"
	"sync"
)

// store handles all database operations for clubs, squads and match
// records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Info represents a club in the store.
type Info struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Human bool   `json:"human"`
}

// SeasonPlayerStats is the season-long fold of a player's match
// statistics, used for leaderboards.
type SeasonPlayerStats struct {
	PlayerID      int     `json:"player_id"`
	PlayerName    string  `json:"player_name"`
	Appearances   int     `json:"appearances"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	Injuries      int     `json:"injuries"`
	AverageRating float64 `json:"average_rating"`
}
