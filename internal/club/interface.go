package club

import (
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
)

// ClubStore defines the interface for interacting with club and match
// data.
type ClubStore interface {
	UpsertClub(info Info) error
	GetClub(clubID int) (*Info, error)
	GetAllClubs() ([]Info, error)
	UpsertPlayers(clubID int, players []*football.Player) error
	SaveTactics(clubID int, tactics football.Tactics) error
	GetSquad(clubID int) (football.Squad, error)
	SaveMatch(rec *match.Match) error
	GetMatch(matchID string) (*match.Match, error)
	GetAllMatches() ([]*match.Match, error)
	ApplySeasonStats(rec *match.Match) error
	GetSeasonStats() ([]SeasonPlayerStats, error)
	GetSeasonStatsByName(playerName string) (*SeasonPlayerStats, error)
	Clear()
	ClearMatch(matchID string)
}
