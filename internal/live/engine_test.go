package live

import (
	"testing"
	"time"

	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 8, 29, 15, 0, 0, 0, time.UTC)

// testSquad builds a full 4-4-2 squad with three bench players. Player
// ids are clubID*100+slot so both sides stay disjoint.
func testSquad(clubID int, human bool, attr int) TeamSetup {
	roles := []football.Role{
		football.RoleGK,
		football.RoleLB, football.RoleCB, football.RoleCB, football.RoleRB,
		football.RoleLM, football.RoleCM, football.RoleCM, football.RoleRM,
		football.RoleST, football.RoleST,
	}
	squad := TeamSetup{
		Club:    football.Club{ID: clubID, Name: "Club", Human: human},
		Players: map[int]*football.Player{},
	}
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
	benchRoles := []football.Role{football.RoleCB, football.RoleCM, football.RoleST}
	for i, role := range benchRoles {
		id := clubID*100 + 50 + i
		squad.Players[id] = &football.Player{ID: id, Name: "Sub", NaturalRole: role, Attributes: attrs}
		squad.Tactics.Bench[i] = &football.LineupPlayer{
			PlayerID:     id,
			Role:         role,
			Instructions: football.DefaultInstructions(),
		}
	}
	return squad
}

func newTestState(src duel.Source) *State {
	return Setup("m1", testDate, testSquad(1, false, 60), testSquad(2, false, 60), src)
}

func TestSetup(t *testing.T) {
	s := newTestState(duel.NewSource())

	assert.Equal(t, PhasePreMatch, s.Phase)
	assert.True(t, s.Paused)
	assert.Len(t, s.Players(SideHome), 11)
	assert.Len(t, s.Bench(SideAway), 3)
	assert.GreaterOrEqual(t, s.RefereeStrictness, 0.0)
	assert.LessOrEqual(t, s.RefereeStrictness, 1.0)

	t.Run("players start fresh", func(t *testing.T) {
		for _, p := range s.Players(SideHome) {
			assert.Equal(t, 100.0, p.Stamina)
			assert.Equal(t, 6.0, p.Stats.Rating)
			assert.True(t, p.Active())
		}
	})

	t.Run("away positions are mirrored", func(t *testing.T) {
		gk := s.Players(SideAway)[0]
		assert.Greater(t, gk.Pos.X, 90.0, "away keeper guards the far goal")
	})

	t.Run("missing player records leave slots empty", func(t *testing.T) {
		squad := testSquad(3, false, 60)
		delete(squad.Players, 300)
		st := Setup("m2", testDate, squad, testSquad(4, false, 60), duel.NewSource())
		assert.Len(t, st.Players(SideHome), 10)
	})
}

func TestFullMatchInvariants(t *testing.T) {
	s := newTestState(duel.NewSource())
	s.Resume()

	var prevHome, prevAway Stats4
	for safety := 0; safety < 300 && s.Phase != PhaseFullTime; safety++ {
		if s.Paused {
			s.Resume()
			continue
		}
		s.Tick()

		if s.Minute > 0 {
			sum := s.HomeStats().Possession + s.AwayStats().Possession
			assert.InDelta(t, 100.0, sum, 1e-6, "possession must sum to 100 at minute %d", s.Minute)
		}

		curHome := snapshotStats(s, SideHome)
		curAway := snapshotStats(s, SideAway)
		assertMonotonic(t, prevHome, curHome)
		assertMonotonic(t, prevAway, curAway)
		prevHome, prevAway = curHome, curAway

		if carrier := s.carrier(); carrier != nil {
			assert.True(t, carrier.Active(), "carrier must never be sent off or injured")
		}
	}

	require.Equal(t, PhaseFullTime, s.Phase, "match must reach full time")
	assert.GreaterOrEqual(t, s.Minute, 90)

	t.Run("second yellows are never reversed", func(t *testing.T) {
		for _, side := range []Side{SideHome, SideAway} {
			for _, p := range s.Players(side) {
				if p.Discipline.Yellows >= 2 {
					assert.True(t, p.Discipline.SentOff)
				}
			}
		}
	})

	t.Run("finalize produces a complete record", func(t *testing.T) {
		rec, err := s.Finalize()
		require.NoError(t, err)
		assert.Equal(t, s.HomeScore, *rec.HomeScore)
		assert.Equal(t, s.AwayScore, *rec.AwayScore)
		assert.NotNil(t, rec.HomeStats)
		assert.NotEmpty(t, rec.Events)
		for _, p := range s.Players(SideHome) {
			assert.Contains(t, rec.PlayerStats, p.ID)
		}
	})
}

// Stats4 is the monotonic subset checked tick over tick.
type Stats4 struct {
	Shots, OnTarget, Goals int
	XG                     float64
}

func snapshotStats(s *State, side Side) Stats4 {
	st := s.side(side).stats
	goals := s.HomeScore
	if side == SideAway {
		goals = s.AwayScore
	}
	return Stats4{Shots: st.Shots, OnTarget: st.ShotsOnTarget, Goals: goals, XG: st.XG}
}

func assertMonotonic(t *testing.T, prev, cur Stats4) {
	t.Helper()
	assert.GreaterOrEqual(t, cur.Shots, prev.Shots)
	assert.GreaterOrEqual(t, cur.OnTarget, prev.OnTarget)
	assert.GreaterOrEqual(t, cur.Goals, prev.Goals)
	assert.GreaterOrEqual(t, cur.XG, prev.XG)
}

func TestFinalizeRejectsRunningMatch(t *testing.T) {
	s := newTestState(duel.NewSource())
	_, err := s.Finalize()
	assert.Error(t, err)
}
