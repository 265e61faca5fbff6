package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/live"
	"github.com/dmoller/touchline/internal/match"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// respondJSON writes v as a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// LifetimeStatsHandler serves the persistent counters that survive
// restarts, as opposed to the in-process Prometheus metrics.
func (s *Server) LifetimeStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Lifetime.GetAll()
		if err != nil {
			http.Error(w, "Failed to get lifetime stats", http.StatusInternalServerError)
			log.Error("Failed to get lifetime stats", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := r.URL.Query().Get("matchID")
		if matchID != "" {
			log.Info("Received request to clear a specific match", "matchID", matchID)
			s.Store.ClearMatch(matchID)
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "Cleared match %s from store!", matchID)
			log.Info("Successfully cleared match from store", "matchID", matchID)
			return
		}

		log.Info("Received request to clear entire store")
		s.Store.Clear()
		s.mu.Lock()
		s.live = make(map[string]*live.State)
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListClubsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs, err := s.Store.GetAllClubs()
		if err != nil {
			http.Error(w, "Failed to get clubs", http.StatusInternalServerError)
			log.Error("Failed to get clubs from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, clubs)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Store.GetAllMatches()
		if err != nil {
			http.Error(w, "Failed to get matches", http.StatusInternalServerError)
			log.Error("Failed to get matches from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matchID := mux.Vars(r)["id"]
		rec, err := s.Store.GetMatch(matchID)
		if err != nil {
			http.Error(w, "Match not found", http.StatusNotFound)
			log.Warn("Match not found", "matchID", matchID, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

// SeasonStatsHandler serves the season player leaderboard.
func (s *Server) SeasonStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Store.GetSeasonStats()
		if err != nil {
			http.Error(w, "Failed to get season stats", http.StatusInternalServerError)
			log.Error("Failed to get season stats from store", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

// PlayerSeasonStatsHandler serves one player's season record, matched
// fuzzily by name.
func (s *Server) PlayerSeasonStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		playerName := mux.Vars(r)["name"]
		stats, err := s.Store.GetSeasonStatsByName(playerName)
		if err != nil {
			http.Error(w, "Player not found", http.StatusNotFound)
			log.Warn("Player season stats not found", "player", playerName, "error", err)
			return
		}
		respondJSON(w, http.StatusOK, stats)
	}
}

// CreateRoundHandler schedules the next league round by pairing all
// known clubs in order.
func (s *Server) CreateRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clubs, err := s.Store.GetAllClubs()
		if err != nil {
			http.Error(w, "Failed to get clubs", http.StatusInternalServerError)
			log.Error("Failed to get clubs from store", "error", err)
			return
		}
		clubIDs := make([]int, 0, len(clubs))
		for _, c := range clubs {
			clubIDs = append(clubIDs, c.ID)
		}
		created, err := s.Fixtures.CreateRound(clubIDs)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to create round: %v", err), http.StatusBadRequest)
			log.Error("Failed to create round", "error", err)
			return
		}
		respondJSON(w, http.StatusCreated, created)
	}
}

func (s *Server) SimulateRoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		results, err := s.Processor.SimulateRound(time.Now(), isDryRun)
		if err != nil {
			http.Error(w, "Failed to simulate round", http.StatusInternalServerError)
			log.Error("Round simulation failed", "error", err)
			return
		}
		respondJSON(w, http.StatusOK, results)
	}
}

func (s *Server) NotifyLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		if err := s.Processor.SendLeaderboard(isDryRun); err != nil {
			http.Error(w, "Failed to send leaderboard", http.StatusInternalServerError)
			log.Error("Failed to send leaderboard", "error", err)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Leaderboard sent.")
	}
}

// CreateLiveMatchHandler assembles a new live match from two clubs'
// stored squads. The match starts paused in the pre-match phase; the
// first resume kicks off.
func (s *Server) CreateLiveMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HomeClubID int       `json:"home_club_id"`
			AwayClubID int       `json:"away_club_id"`
			Date       time.Time `json:"date"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.HomeClubID == req.AwayClubID {
			http.Error(w, "A club cannot play itself", http.StatusBadRequest)
			return
		}

		home, err := s.Store.GetSquad(req.HomeClubID)
		if err != nil {
			http.Error(w, "Home club not found", http.StatusNotFound)
			log.Warn("Home squad not found", "clubID", req.HomeClubID, "error", err)
			return
		}
		away, err := s.Store.GetSquad(req.AwayClubID)
		if err != nil {
			http.Error(w, "Away club not found", http.StatusNotFound)
			log.Warn("Away squad not found", "clubID", req.AwayClubID, "error", err)
			return
		}

		date := req.Date
		if date.IsZero() {
			date = time.Now()
		}
		state := live.Setup(uuid.NewString(), date, home, away, duel.NewSource())

		s.mu.Lock()
		s.live[state.ID] = state
		s.mu.Unlock()

		log.Info("Live match created", "matchID", state.ID, "home", state.HomeName(), "away", state.AwayName())
		respondJSON(w, http.StatusCreated, state)
	}
}

// liveMatch looks up an in-progress live match. The caller must hold
// s.mu for the duration of any command issued against the state.
func (s *Server) liveMatch(id string) (*live.State, bool) {
	state, ok := s.live[id]
	return state, ok
}

func (s *Server) LiveStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// TickHandler advances a live match by one or more simulated minutes.
// Ticking stops early when the engine pauses itself, at half time, full
// time or a forced substitution.
func (s *Server) TickHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minutes := 1
		if v := r.URL.Query().Get("minutes"); v != "" {
			parsed, err := strconv.Atoi(v)
			if err != nil || parsed < 1 {
				http.Error(w, "Invalid 'minutes' parameter", http.StatusBadRequest)
				return
			}
			minutes = parsed
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}

		var events []match.Event
		for i := 0; i < minutes; i++ {
			events = append(events, state.Tick()...)
			if state.Paused || state.PendingSub != nil {
				break
			}
		}
		respondJSON(w, http.StatusOK, struct {
			Events []match.Event `json:"events"`
			State  *live.State   `json:"state"`
		}{Events: events, State: state})
	}
}

func (s *Server) PauseHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		state.Pause()
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) ResumeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		state.Resume()
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) SubstituteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Side  live.Side `json:"side"`
			OutID int       `json:"out_id"`
			InID  int       `json:"in_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		side, err := parseSide(req.Side)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		if err := state.Substitute(side, req.OutID, req.InID); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) MentalityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Side      live.Side          `json:"side"`
			Mentality football.Mentality `json:"mentality"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		side, err := parseSide(req.Side)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		switch req.Mentality {
		case football.MentalityDefensive, football.MentalityBalanced, football.MentalityOffensive:
		default:
			http.Error(w, fmt.Sprintf("unknown mentality %q", req.Mentality), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		state.SetMentality(side, req.Mentality)
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) ShoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Side  live.Side  `json:"side"`
			Shout live.Shout `json:"shout"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		side, err := parseSide(req.Side)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		if err := state.ApplyShout(side, req.Shout); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) InstructionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Side         live.Side             `json:"side"`
			PlayerID     int                   `json:"player_id"`
			Role         football.Role         `json:"role"`
			Anchor       football.Coordinate   `json:"anchor"`
			Instructions football.Instructions `json:"instructions"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		side, err := parseSide(req.Side)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		if err := state.SetPlayerInstructions(side, req.PlayerID, req.Role, req.Anchor, req.Instructions); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

func (s *Server) DismissSubHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		state, ok := s.liveMatch(mux.Vars(r)["id"])
		if !ok {
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		if err := state.DismissForcedSubstitution(); err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		respondJSON(w, http.StatusOK, state)
	}
}

// FinalizeHandler converts a finished live match into a permanent
// record: saved, folded into season stats and notified through the same
// pipeline the statistical engine uses.
func (s *Server) FinalizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		isDryRun := isDryRunFromContext(r)
		matchID := mux.Vars(r)["id"]

		s.mu.Lock()
		state, ok := s.liveMatch(matchID)
		if !ok {
			s.mu.Unlock()
			http.Error(w, "Live match not found", http.StatusNotFound)
			return
		}
		rec, err := state.Finalize()
		s.mu.Unlock()
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}

		if err := s.Processor.RecordResult(rec, isDryRun); err != nil {
			http.Error(w, "Failed to record match result", http.StatusInternalServerError)
			log.Error("Failed to record live match result", "error", err, "matchID", matchID)
			return
		}

		if !isDryRun {
			s.mu.Lock()
			delete(s.live, matchID)
			s.mu.Unlock()
		}
		respondJSON(w, http.StatusOK, rec)
	}
}

func parseSide(side live.Side) (live.Side, error) {
	switch side {
	case live.SideHome, live.SideAway:
		return side, nil
	}
	return live.SideNone, fmt.Errorf("unknown side %q", side)
}
