package club_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/database"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := club.New(db)
	return store, db, dbTeardown
}

func intPtr(v int) *int { return &v }

func TestUpsertClubAndSquadRoundtrip(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Info{ID: 1, Name: "Northbridge FC", Human: true}))
	require.NoError(t, store.UpsertClub(club.Info{ID: 2, Name: "Easton United"}))

	players := []*football.Player{
		{
			ID: 101, Name: "Erik Holmqvist", NaturalRole: football.RoleST,
			Attributes:  football.Attributes{Shooting: 82, Pace: 77, NaturalFitness: 70},
			Familiarity: map[football.Role]int{football.RoleCAM: 60},
		},
		{
			ID: 102, Name: "Tomas Lindgren", NaturalRole: football.RoleGK,
			Attributes: football.Attributes{Positioning: 75, NaturalFitness: 85},
		},
	}
	require.NoError(t, store.UpsertPlayers(1, players))

	var tactics football.Tactics
	tactics.Mentality = football.MentalityOffensive
	tactics.Lineup[0] = &football.LineupPlayer{PlayerID: 102, Role: football.RoleGK, Instructions: football.DefaultInstructions()}
	tactics.Lineup[10] = &football.LineupPlayer{PlayerID: 101, Role: football.RoleST, Instructions: football.DefaultInstructions()}
	require.NoError(t, store.SaveTactics(1, tactics))

	squad, err := store.GetSquad(1)
	require.NoError(t, err)
	assert.Equal(t, "Northbridge FC", squad.Club.Name)
	assert.True(t, squad.Club.Human)
	require.Len(t, squad.Players, 2)
	assert.Equal(t, 82, squad.Players[101].Attributes.Shooting)
	assert.Equal(t, 60, squad.Players[101].FamiliarityWith(football.RoleCAM))
	assert.Equal(t, football.MentalityOffensive, squad.Tactics.Mentality)
	require.NotNil(t, squad.Tactics.Lineup[10])
	assert.Equal(t, 101, squad.Tactics.Lineup[10].PlayerID)

	t.Run("unknown club is an error", func(t *testing.T) {
		_, err := store.GetSquad(99)
		assert.Error(t, err)
	})

	t.Run("club without saved tactics defaults to balanced", func(t *testing.T) {
		squad, err := store.GetSquad(2)
		require.NoError(t, err)
		assert.Equal(t, football.MentalityBalanced, squad.Tactics.Mentality)
		assert.Equal(t, 0, squad.Tactics.StartersFilled())
	})
}

func TestSaveAndGetMatch(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Info{ID: 1, Name: "Northbridge FC"}))
	require.NoError(t, store.UpsertClub(club.Info{ID: 2, Name: "Easton United"}))

	date := time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)
	rec := &match.Match{
		ID:         "match-1",
		HomeClubID: 1,
		AwayClubID: 2,
		Date:       date,
		HomeScore:  intPtr(2),
		AwayScore:  intPtr(1),
		HomeStats:  &match.Stats{Shots: 11, XG: 1.7},
		AwayStats:  &match.Stats{Shots: 6},
		Events: []match.Event{
			{Minute: 23, Category: match.EventGoal, Text: "GOAL!", PlayerIDs: []int{101}},
		},
		PlayerStats: map[int]*match.PlayerStats{
			101: {PlayerID: 101, Goals: 2, Rating: 8.0},
		},
		Cards: []match.CardEvent{{PlayerID: 102, Card: match.CardYellow}},
	}
	require.NoError(t, store.SaveMatch(rec))

	got, err := store.GetMatch("match-1")
	require.NoError(t, err)
	assert.Equal(t, 2, *got.HomeScore)
	assert.Equal(t, 1, *got.AwayScore)
	assert.Equal(t, date, got.Date)
	require.NotNil(t, got.HomeStats)
	assert.Equal(t, 11, got.HomeStats.Shots)
	assert.InDelta(t, 1.7, got.HomeStats.XG, 1e-9)
	require.Len(t, got.Events, 1)
	assert.Equal(t, match.EventGoal, got.Events[0].Category)
	require.Contains(t, got.PlayerStats, 101)
	assert.Equal(t, 2, got.PlayerStats[101].Goals)

	t.Run("re-save overwrites", func(t *testing.T) {
		rec.HomeScore = intPtr(3)
		require.NoError(t, store.SaveMatch(rec))
		got, err := store.GetMatch("match-1")
		require.NoError(t, err)
		assert.Equal(t, 3, *got.HomeScore)
	})

	t.Run("unknown match is an error", func(t *testing.T) {
		_, err := store.GetMatch("nope")
		assert.Error(t, err)
	})

	t.Run("all matches are sorted newest first", func(t *testing.T) {
		older := &match.Match{ID: "match-0", HomeClubID: 2, AwayClubID: 1, Date: date.AddDate(0, 0, -7)}
		require.NoError(t, store.SaveMatch(older))
		matches, err := store.GetAllMatches()
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "match-1", matches[0].ID)
	})
}

func TestApplySeasonStats(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Info{ID: 1, Name: "Northbridge FC"}))
	require.NoError(t, store.UpsertPlayers(1, []*football.Player{
		{ID: 101, Name: "Erik Holmqvist", NaturalRole: football.RoleST},
		{ID: 102, Name: "Tomas Lindgren", NaturalRole: football.RoleGK},
	}))

	rec := &match.Match{
		ID: "match-1",
		PlayerStats: map[int]*match.PlayerStats{
			101: {PlayerID: 101, Goals: 2, Assists: 1, Rating: 8.0},
			102: {PlayerID: 102, Rating: 6.0},
		},
		Cards:    []match.CardEvent{{PlayerID: 102, Card: match.CardYellow}},
		Injuries: []match.InjuryEvent{{PlayerID: 101, Diagnosis: "Hamstring strain"}},
	}
	require.NoError(t, store.ApplySeasonStats(rec))
	require.NoError(t, store.ApplySeasonStats(rec)) // second match, same numbers

	stats, err := store.GetSeasonStats()
	require.NoError(t, err)
	require.Len(t, stats, 2)

	top := stats[0]
	assert.Equal(t, 101, top.PlayerID)
	assert.Equal(t, 2, top.Appearances)
	assert.Equal(t, 4, top.Goals)
	assert.Equal(t, 2, top.Assists)
	assert.Equal(t, 2, top.Injuries)
	assert.InDelta(t, 8.0, top.AverageRating, 1e-9)

	t.Run("fuzzy lookup by name", func(t *testing.T) {
		stat, err := store.GetSeasonStatsByName("lindgren")
		require.NoError(t, err)
		assert.Equal(t, 102, stat.PlayerID)
		assert.Equal(t, 2, stat.YellowCards)
	})

	t.Run("unknown name is an error", func(t *testing.T) {
		_, err := store.GetSeasonStatsByName("nobody")
		assert.Error(t, err)
	})
}

func TestClear(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	require.NoError(t, store.UpsertClub(club.Info{ID: 1, Name: "Northbridge FC"}))
	require.NoError(t, store.SaveMatch(&match.Match{ID: "match-1", HomeClubID: 1, AwayClubID: 1}))

	store.Clear()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM clubs").Scan(&count))
	assert.Equal(t, 0, count)
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM matches").Scan(&count))
	assert.Equal(t, 0, count)

	t.Run("clear single match", func(t *testing.T) {
		require.NoError(t, store.UpsertClub(club.Info{ID: 1, Name: "Northbridge FC"}))
		require.NoError(t, store.SaveMatch(&match.Match{ID: "match-2", HomeClubID: 1, AwayClubID: 1}))
		store.ClearMatch("match-2")
		_, err := store.GetMatch("match-2")
		assert.Error(t, err)
	})
}
