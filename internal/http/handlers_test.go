package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/config"
	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/fixtures"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/live"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/metrics"
	"github.com/dmoller/touchline/internal/notifier"
	"github.com/dmoller/touchline/internal/processor"
	"github.com/dmoller/touchline/internal/pubsub"
	"github.com/dmoller/touchline/internal/quicksim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverDeps struct {
	store    *club.MockClubStore
	fixtures *fixtures.MockFixtureStore
	notifier *notifier.Mock
	metrics  *metrics.Mock
	lifetime *metrics.MockStore
	pubsub   *pubsub.MockPubSubClient
}

func newTestServer() (*Server, *serverDeps) {
	deps := &serverDeps{
		store:    club.NewMock(),
		fixtures: fixtures.NewMock(),
		notifier: notifier.NewMock(),
		metrics:  metrics.NewMock(),
		lifetime: metrics.NewMockStore(),
		pubsub:   pubsub.NewMock(""),
	}
	engine := quicksim.New(duel.NewSource())
	proc := processor.New(deps.store, deps.fixtures, engine, deps.notifier, deps.metrics, deps.lifetime, deps.pubsub)
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := NewServer(deps.store, deps.fixtures, deps.metrics, metricsHandler, deps.lifetime, config.Config{}, deps.notifier, proc, deps.pubsub)
	return srv, deps
}

func evenAttributes(v int) football.Attributes {
	return football.Attributes{
		Passing: v, Dribbling: v, Shooting: v, Tackling: v, Heading: v,
		Crossing: v, Aggression: v, Creativity: v, Positioning: v,
		Teamwork: v, WorkRate: v, Pace: v, Stamina: v, Strength: v,
		NaturalFitness: 80,
	}
}

// testSquad builds a full 4-4-2 with three bench midfielders. Player IDs
// are clubID*100+slot so the two sides never collide.
func testSquad(clubID int, name string) football.Squad {
	roles := []football.Role{
		football.RoleGK,
		football.RoleCB, football.RoleCB, football.RoleLB, football.RoleRB,
		football.RoleCM, football.RoleCM, football.RoleLM, football.RoleRM,
		football.RoleST, football.RoleST,
	}
	squad := football.Squad{
		Club:    football.Club{ID: clubID, Name: name},
		Players: map[int]*football.Player{},
	}
	squad.Tactics.Mentality = football.MentalityBalanced
	for i, role := range roles {
		id := clubID*100 + i + 1
		squad.Players[id] = &football.Player{
			ID:          id,
			Name:        fmt.Sprintf("%s Player %d", name, i+1),
			NaturalRole: role,
			Attributes:  evenAttributes(60),
		}
		squad.Tactics.Lineup[i] = &football.LineupPlayer{
			PlayerID:     id,
			Role:         role,
			Instructions: football.DefaultInstructions(),
		}
	}
	for i := 0; i < 3; i++ {
		id := clubID*100 + 20 + i
		squad.Players[id] = &football.Player{
			ID:          id,
			Name:        fmt.Sprintf("%s Sub %d", name, i+1),
			NaturalRole: football.RoleCM,
			Attributes:  evenAttributes(55),
		}
		squad.Tactics.Bench[i] = &football.LineupPlayer{
			PlayerID:     id,
			Role:         football.RoleCM,
			Instructions: football.DefaultInstructions(),
		}
	}
	return squad
}

func squadLookup(srv *serverDeps) {
	srv.store.GetSquadFunc = func(clubID int) (football.Squad, error) {
		return testSquad(clubID, fmt.Sprintf("Club %d", clubID)), nil
	}
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthCheckHandler(t *testing.T) {
	srv, _ := newTestServer()
	w := doJSON(srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK!", w.Body.String())
}

func TestListClubsHandler(t *testing.T) {
	srv, deps := newTestServer()
	deps.store.GetAllClubsFunc = func() ([]club.Info, error) {
		return []club.Info{{ID: 1, Name: "Northbridge FC", Human: true}, {ID: 2, Name: "Easton United"}}, nil
	}

	w := doJSON(srv, http.MethodGet, "/clubs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var clubs []club.Info
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &clubs))
	require.Len(t, clubs, 2)
	assert.Equal(t, "Northbridge FC", clubs[0].Name)
}

func TestSeasonStatsHandlers(t *testing.T) {
	srv, deps := newTestServer()
	deps.store.GetSeasonStatsFunc = func() ([]club.SeasonPlayerStats, error) {
		return []club.SeasonPlayerStats{{PlayerName: "Erik Holmqvist", Goals: 12}}, nil
	}

	t.Run("leaderboard", func(t *testing.T) {
		w := doJSON(srv, http.MethodGet, "/standings", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var stats []club.SeasonPlayerStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		require.Len(t, stats, 1)
		assert.Equal(t, 12, stats[0].Goals)
	})

	t.Run("unknown player returns 404", func(t *testing.T) {
		deps.store.GetSeasonStatsByNameFunc = func(playerName string) (*club.SeasonPlayerStats, error) {
			return nil, fmt.Errorf("no stats found for player %q", playerName)
		}
		w := doJSON(srv, http.MethodGet, "/standings/nobody", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateRoundHandler(t *testing.T) {
	srv, deps := newTestServer()
	deps.store.GetAllClubsFunc = func() ([]club.Info, error) {
		return []club.Info{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil
	}
	deps.fixtures.CreateRoundFunc = func(clubIDs []int) ([]fixtures.Fixture, error) {
		return []fixtures.Fixture{
			{ID: "f1", Round: 1, HomeClubID: 1, AwayClubID: 2},
			{ID: "f2", Round: 1, HomeClubID: 3, AwayClubID: 4},
		}, nil
	}

	w := doJSON(srv, http.MethodPost, "/rounds", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, deps.fixtures.CreateRoundCalls, 1)
	assert.Equal(t, []int{1, 2, 3, 4}, deps.fixtures.CreateRoundCalls[0])

	var created []fixtures.Fixture
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Len(t, created, 2)
}

func TestSimulateRoundHandler(t *testing.T) {
	srv, deps := newTestServer()
	squadLookup(deps)
	deps.fixtures.GetPendingFixturesFunc = func() ([]fixtures.Fixture, error) {
		return []fixtures.Fixture{{ID: "f1", Round: 1, HomeClubID: 1, AwayClubID: 2, Status: fixtures.StatusScheduled}}, nil
	}

	w := doJSON(srv, http.MethodPost, "/simulate-round", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []*match.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	require.NotNil(t, results[0].HomeScore)

	assert.Len(t, deps.store.SaveMatchCalls, 1)
	assert.Len(t, deps.store.ApplySeasonStatsCalls, 1)
	assert.Len(t, deps.fixtures.MarkPlayedCalls, 1)
	assert.Equal(t, 1, deps.metrics.MatchesSimulated())
}

func TestCreateLiveMatchHandler(t *testing.T) {
	t.Run("creates a paused pre-match state", func(t *testing.T) {
		srv, deps := newTestServer()
		squadLookup(deps)

		w := doJSON(srv, http.MethodPost, "/live", map[string]any{"home_club_id": 1, "away_club_id": 2})
		require.Equal(t, http.StatusCreated, w.Code)

		var state live.State
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.NotEmpty(t, state.ID)
		assert.Equal(t, live.PhasePreMatch, state.Phase)
		assert.True(t, state.Paused)
	})

	t.Run("rejects a club playing itself", func(t *testing.T) {
		srv, deps := newTestServer()
		squadLookup(deps)
		w := doJSON(srv, http.MethodPost, "/live", map[string]any{"home_club_id": 1, "away_club_id": 1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown club returns 404", func(t *testing.T) {
		srv, deps := newTestServer()
		deps.store.GetSquadFunc = func(clubID int) (football.Squad, error) {
			return football.Squad{}, fmt.Errorf("unknown club %d", clubID)
		}
		w := doJSON(srv, http.MethodPost, "/live", map[string]any{"home_club_id": 1, "away_club_id": 2})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// createLiveMatch is a test helper that creates a live match and returns
// its ID.
func createLiveMatch(t *testing.T, srv *Server) string {
	t.Helper()
	w := doJSON(srv, http.MethodPost, "/live", map[string]any{"home_club_id": 1, "away_club_id": 2})
	require.Equal(t, http.StatusCreated, w.Code)
	var state live.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state.ID
}

type tickResponse struct {
	Events []match.Event `json:"events"`
	State  live.State    `json:"state"`
}

func TestLiveMatchLifecycle(t *testing.T) {
	srv, deps := newTestServer()
	squadLookup(deps)
	id := createLiveMatch(t, srv)

	// Kick off.
	w := doJSON(srv, http.MethodPost, "/live/"+id+"/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state live.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	assert.Equal(t, live.PhaseFirstHalf, state.Phase)
	assert.False(t, state.Paused)

	// Run out the first half. The engine pauses itself at half time.
	w = doJSON(srv, http.MethodPost, "/live/"+id+"/tick?minutes=60", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tick tickResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tick))
	assert.Equal(t, live.PhaseHalfTime, tick.State.Phase)
	assert.Equal(t, 45, tick.State.Minute)
	assert.True(t, tick.State.Paused)
	assert.NotEmpty(t, tick.Events)

	// Second half and full time.
	w = doJSON(srv, http.MethodPost, "/live/"+id+"/resume", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(srv, http.MethodPost, "/live/"+id+"/tick?minutes=120", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tick))
	assert.Equal(t, live.PhaseFullTime, tick.State.Phase)
	assert.GreaterOrEqual(t, tick.State.Minute, 90)

	// Finalize persists through the shared pipeline.
	w = doJSON(srv, http.MethodPost, "/live/"+id+"/finalize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rec match.Match
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, id, rec.ID)
	require.NotNil(t, rec.HomeScore)

	assert.Len(t, deps.store.SaveMatchCalls, 1)
	assert.Len(t, deps.store.ApplySeasonStatsCalls, 1)
	assert.Len(t, deps.notifier.SendResultNotificationCalls, 1)

	// The finished match leaves the registry.
	w = doJSON(srv, http.MethodGet, "/live/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLiveMatchCommands(t *testing.T) {
	newMatch := func(t *testing.T) (*Server, string) {
		srv, deps := newTestServer()
		squadLookup(deps)
		return srv, createLiveMatch(t, srv)
	}

	t.Run("pause flags the match", func(t *testing.T) {
		srv, id := newMatch(t)
		doJSON(srv, http.MethodPost, "/live/"+id+"/resume", nil)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/pause", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var state live.State
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
		assert.True(t, state.Paused)
	})

	t.Run("substitution swaps a starter for a bench player", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/substitute", map[string]any{
			"side": "home", "out_id": 110, "in_id": 120,
		})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("substituting an unknown player conflicts", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/substitute", map[string]any{
			"side": "home", "out_id": 9999, "in_id": 120,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("mentality change is validated", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/mentality", map[string]any{
			"side": "away", "mentality": "offensive",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(srv, http.MethodPost, "/live/"+id+"/mentality", map[string]any{
			"side": "away", "mentality": "suicidal",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown shout is rejected", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/shout", map[string]any{
			"side": "home", "shout": "push_forward",
		})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(srv, http.MethodPost, "/live/"+id+"/shout", map[string]any{
			"side": "home", "shout": "scream",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown side is rejected", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/shout", map[string]any{
			"side": "neutral", "shout": "push_forward",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("instructions update a pitch player", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/instructions", map[string]any{
			"side":      "home",
			"player_id": 111,
			"role":      "CAM",
			"instructions": map[string]any{
				"shooting_tendency": "high",
			},
		})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("dismissing without a pending substitution conflicts", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/dismiss-sub", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("finalizing before full time conflicts", func(t *testing.T) {
		srv, id := newMatch(t)
		w := doJSON(srv, http.MethodPost, "/live/"+id+"/finalize", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("commands against an unknown match are 404s", func(t *testing.T) {
		srv, _ := newMatch(t)
		for _, path := range []string{"/live/nope/tick", "/live/nope/pause", "/live/nope/resume", "/live/nope/finalize"} {
			w := doJSON(srv, http.MethodPost, path, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}
	})
}

func TestClearStoreHandler(t *testing.T) {
	srv, deps := newTestServer()
	squadLookup(deps)
	id := createLiveMatch(t, srv)

	t.Run("clears a single match", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/clear?matchID=abc", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"abc"}, deps.store.ClearMatchCalls)
	})

	t.Run("clears everything including live matches", func(t *testing.T) {
		w := doJSON(srv, http.MethodPost, "/clear", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 1, deps.store.ClearCalls)

		w = doJSON(srv, http.MethodGet, "/live/"+id, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestLifetimeStatsHandler(t *testing.T) {
	srv, deps := newTestServer()
	deps.lifetime.Increment("matches_simulated")
	deps.lifetime.Increment("matches_simulated")

	w := doJSON(srv, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]int
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats["matches_simulated"])
}
