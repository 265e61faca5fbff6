package quicksim

import (
	"testing"
	"time"

	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

func testSquad(clubID, attr int, mentality football.Mentality) football.Squad {
	roles := []football.Role{
		football.RoleGK,
		football.RoleLB, football.RoleCB, football.RoleCB, football.RoleRB,
		football.RoleLM, football.RoleCM, football.RoleCM, football.RoleRM,
		football.RoleST, football.RoleST,
	}
	squad := football.Squad{
		Club:    football.Club{ID: clubID, Name: "Club"},
		Players: map[int]*football.Player{},
	}
	squad.Tactics.Mentality = mentality
	attrs := football.Attributes{
		Passing: attr, Dribbling: attr, Shooting: attr, Tackling: attr,
		Heading: attr, Crossing: attr, Aggression: attr, Creativity: attr,
		Positioning: attr, Teamwork: attr, WorkRate: attr, Pace: attr,
		Stamina: attr, Strength: attr, NaturalFitness: 80,
	}
	for i, role := range roles {
		id := clubID*100 + i
		squad.Players[id] = &football.Player{ID: id, Name: "Player", NaturalRole: role, Attributes: attrs}
		squad.Tactics.Lineup[i] = &football.LineupPlayer{
			PlayerID:     id,
			Role:         role,
			Instructions: football.DefaultInstructions(),
		}
	}
	return squad
}

func TestRunProducesCompleteRecord(t *testing.T) {
	e := New(duel.NewSource())
	home := testSquad(1, 60, football.MentalityBalanced)
	away := testSquad(2, 60, football.MentalityBalanced)

	rec := e.Run(home, away, testDate)

	require.NotNil(t, rec.HomeScore)
	require.NotNil(t, rec.AwayScore)
	assert.GreaterOrEqual(t, *rec.HomeScore, 0)
	assert.GreaterOrEqual(t, *rec.AwayScore, 0)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, testDate, rec.Date)
	assert.Equal(t, 1, rec.HomeClubID)
	assert.Equal(t, 2, rec.AwayClubID)

	require.NotNil(t, rec.HomeStats)
	require.NotNil(t, rec.AwayStats)
	assert.InDelta(t, 100.0, rec.HomeStats.Possession+rec.AwayStats.Possession, 1e-6)
	assert.GreaterOrEqual(t, rec.HomeStats.Shots, rec.HomeStats.ShotsOnTarget)
	assert.GreaterOrEqual(t, rec.HomeStats.Passes, 300)

	assert.Len(t, rec.HomeLineup, 11)
	assert.Len(t, rec.AwayLineup, 11)
	for _, squad := range []football.Squad{home, away} {
		for _, slot := range squad.Tactics.Lineup {
			assert.Contains(t, rec.PlayerStats, slot.PlayerID)
		}
	}

	t.Run("goal count matches goal events", func(t *testing.T) {
		goals := 0
		for _, ev := range rec.Events {
			if ev.Category == match.EventGoal {
				goals++
			}
		}
		assert.Equal(t, *rec.HomeScore+*rec.AwayScore, goals)
	})

	t.Run("goal tallies agree with player stats", func(t *testing.T) {
		total := 0
		for _, ps := range rec.PlayerStats {
			total += ps.Goals
			assert.LessOrEqual(t, ps.Rating, 10.0)
		}
		assert.Equal(t, *rec.HomeScore+*rec.AwayScore, total)
	})
}

func TestRunWithShortLineupUsesNeutralRatings(t *testing.T) {
	short := testSquad(1, 90, football.MentalityBalanced)
	short.Tactics.Lineup[10] = nil

	r := computeRatings(short)

	assert.Equal(t, neutralRating, r.attack)
	assert.Equal(t, neutralRating, r.goalkeeping)

	// Run must still complete and return a well-formed record.
	rec := New(duel.NewSource()).Run(short, testSquad(2, 60, football.MentalityBalanced), testDate)
	require.NotNil(t, rec.HomeScore)
	assert.Len(t, rec.HomeLineup, 10)
}

func TestStrongerSideWinsMoreOften(t *testing.T) {
	e := New(duel.NewSource())
	strong := testSquad(1, 85, football.MentalityBalanced)
	weak := testSquad(2, 35, football.MentalityBalanced)

	wins, losses := 0, 0
	for i := 0; i < 200; i++ {
		rec := e.Run(strong, weak, testDate)
		switch {
		case *rec.HomeScore > *rec.AwayScore:
			wins++
		case *rec.HomeScore < *rec.AwayScore:
			losses++
		}
	}
	assert.Greater(t, wins, losses, "a far stronger squad must win the lion's share")
}

func TestRatings(t *testing.T) {
	t.Run("familiarity discounts out-of-position players", func(t *testing.T) {
		natural := testSquad(1, 60, football.MentalityBalanced)
		shuffled := testSquad(1, 60, football.MentalityBalanced)
		// Play a striker in goal and the keeper up front.
		shuffled.Tactics.Lineup[0].Role = football.RoleST
		shuffled.Tactics.Lineup[9].Role = football.RoleGK

		assert.Greater(t, computeRatings(natural).goalkeeping, computeRatings(shuffled).goalkeeping)
	})

	t.Run("mentality trades attack for defense", func(t *testing.T) {
		balanced := computeRatings(testSquad(1, 60, football.MentalityBalanced))
		defensive := computeRatings(testSquad(1, 60, football.MentalityDefensive))
		assert.Greater(t, defensive.defense, balanced.defense)
		assert.Less(t, defensive.attack, balanced.attack)
	})

	t.Run("possession units scale with posture", func(t *testing.T) {
		assert.Equal(t, 150, possessionUnits(football.MentalityOffensive, football.MentalityOffensive))
		assert.Equal(t, 90, possessionUnits(football.MentalityDefensive, football.MentalityDefensive))
		assert.Equal(t, 120, possessionUnits(football.MentalityOffensive, football.MentalityDefensive))
	})
}
