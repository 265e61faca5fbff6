package match

import (
	"time"

	"github.com/dmoller/touchline/internal/football"
)

// EventCategory tags a log entry so consumers (commentary display, season
// statistics) can filter without parsing the text.
type EventCategory string

const (
	EventInfo         EventCategory = "info"
	EventGoal         EventCategory = "goal"
	EventSave         EventCategory = "save"
	EventNearMiss     EventCategory = "near_miss"
	EventTackle       EventCategory = "tackle"
	EventInterception EventCategory = "interception"
	EventFoul         EventCategory = "foul"
	EventYellowCard   EventCategory = "yellow_card"
	EventRedCard      EventCategory = "red_card"
	EventInjury       EventCategory = "injury"
	EventSubstitution EventCategory = "substitution"
	EventHighlight    EventCategory = "highlight"
)

// Event is one entry in a match's ordered log.
type Event struct {
	Minute   int           `json:"minute"`
	Category EventCategory `json:"category"`
	Text     string        `json:"text"`
	// Up to two participants, actor first.
	PlayerIDs []int `json:"player_ids,omitempty"`
}

// Stats are one side's aggregate match statistics.
type Stats struct {
	Shots         int     `json:"shots"`
	ShotsOnTarget int     `json:"shots_on_target"`
	Possession    float64 `json:"possession"`
	Tackles       int     `json:"tackles"`
	Passes        int     `json:"passes"`
	PassAccuracy  float64 `json:"pass_accuracy"`
	Fouls         int     `json:"fouls"`
	Corners       int     `json:"corners"`
	Offsides      int     `json:"offsides"`
	XG            float64 `json:"xg"`
	BigChances    int     `json:"big_chances"`
}

// PlayerStats are one player's accumulated statistics for a single match.
type PlayerStats struct {
	PlayerID int     `json:"player_id"`
	Shots    int     `json:"shots"`
	Goals    int     `json:"goals"`
	Assists  int     `json:"assists"`
	Tackles  int     `json:"tackles"`
	Dribbles int     `json:"dribbles"`
	Passes   int     `json:"passes"`
	Rating   float64 `json:"rating"`
}

// CardType distinguishes disciplinary outcomes.
type CardType string

const (
	CardYellow CardType = "yellow"
	CardRed    CardType = "red"
)

// CardEvent records a booking for the season's disciplinary ledger.
type CardEvent struct {
	PlayerID int      `json:"player_id"`
	Card     CardType `json:"card"`
}

// InjuryEvent records a diagnosis and the unadjusted return date. The
// owning club's medical department may shorten the layoff downstream.
type InjuryEvent struct {
	PlayerID   int       `json:"player_id"`
	Diagnosis  string    `json:"diagnosis"`
	ReturnDate time.Time `json:"return_date"`
}

// Match is the shared result record produced by both the live and the
// statistical engine. Optional sections are nil when an engine does not
// populate them.
type Match struct {
	ID         string    `json:"id"`
	HomeClubID int       `json:"home_club_id"`
	AwayClubID int       `json:"away_club_id"`
	Date       time.Time `json:"date"`

	HomeScore *int `json:"home_score,omitempty"`
	AwayScore *int `json:"away_score,omitempty"`

	HomeStats *Stats `json:"home_stats,omitempty"`
	AwayStats *Stats `json:"away_stats,omitempty"`

	Events      []Event              `json:"events,omitempty"`
	PlayerStats map[int]*PlayerStats `json:"player_stats,omitempty"`

	HomeLineup []football.LineupPlayer `json:"home_lineup,omitempty"`
	AwayLineup []football.LineupPlayer `json:"away_lineup,omitempty"`

	Cards    []CardEvent   `json:"cards,omitempty"`
	Injuries []InjuryEvent `json:"injuries,omitempty"`
}

// Score returns the final score, defaulting to 0-0 when unset.
func (m *Match) Score() (home, away int) {
	if m.HomeScore != nil {
		home = *m.HomeScore
	}
	if m.AwayScore != nil {
		away = *m.AwayScore
	}
	return home, away
}
