// Package live implements the per-minute match engine: a state machine
// over match phases driven one simulated minute at a time by an external
// caller, resolving possession through the shared duel model.
package live

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/commentary"
	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
)

// Setup assembles a fresh Live Match State from two clubs' tactics and
// player records. The state starts in PreMatch, paused; the first Resume
// kicks off.
func Setup(id string, date time.Time, home, away TeamSetup, src duel.Source) *State {
	s := &State{
		ID:                id,
		Date:              date,
		Phase:             PhasePreMatch,
		Paused:            true,
		RefereeStrictness: src.Float64(),
		Attacking:         SideHome,
		Zone:              ZoneMidfield,
		kickoffSide:       SideHome,
		possessionMinutes: map[Side]float64{SideHome: 0, SideAway: 0},
		home:              buildTeam(home, SideHome),
		away:              buildTeam(away, SideAway),
		resolver:          duel.NewResolver(src),
		comms:             commentary.New(src),
	}
	log.Debug("Live match assembled", "matchID", id, "home", s.home.name, "away", s.away.name)
	return s
}

func buildTeam(setup TeamSetup, side Side) *team {
	t := &team{
		clubID:    setup.Club.ID,
		name:      setup.Club.Name,
		human:     setup.Club.Human,
		mentality: setup.Tactics.Mentality,
	}
	if t.mentality == "" {
		t.mentality = football.MentalityBalanced
	}
	for _, slot := range setup.Tactics.Lineup {
		if p := derivePlayer(slot, setup.Players, side); p != nil {
			t.lineup = append(t.lineup, p)
		}
	}
	for _, slot := range setup.Tactics.Bench {
		if p := derivePlayer(slot, setup.Players, side); p != nil {
			t.bench = append(t.bench, p)
		}
	}
	return t
}

func derivePlayer(slot *football.LineupPlayer, records map[int]*football.Player, side Side) *Player {
	if slot == nil {
		return nil
	}
	rec, ok := records[slot.PlayerID]
	if !ok {
		// Missing record: the slot silently stays empty, per the core's
		// degrade-don't-fail contract.
		log.Warn("Lineup slot references unknown player", "playerID", slot.PlayerID)
		return nil
	}
	anchor := slot.Position
	if anchor == (football.Coordinate{}) {
		anchor = football.DefaultPosition(slot.Role)
	}
	return &Player{
		ID:           rec.ID,
		Name:         rec.Name,
		Attr:         rec.Attributes,
		Stamina:      100,
		Role:         slot.Role,
		Instructions: slot.Instructions,
		Anchor:       anchor,
		Pos:          absolutePosition(anchor, side),
		Stats:        match.PlayerStats{PlayerID: rec.ID, Rating: 6.0},
	}
}

func (s *State) side(side Side) *team {
	if side == SideHome {
		return s.home
	}
	return s.away
}

// HomeName and AwayName expose team names for display layers.
func (s *State) HomeName() string { return s.home.name }
func (s *State) AwayName() string { return s.away.name }

// HomeStats and AwayStats expose the running aggregate statistics.
func (s *State) HomeStats() match.Stats { return s.home.stats }
func (s *State) AwayStats() match.Stats { return s.away.stats }

// SubsMade returns how many substitutions a side has used.
func (s *State) SubsMade(side Side) int { return s.side(side).subsMade }

// Mentality returns a side's current mentality.
func (s *State) Mentality(side Side) football.Mentality { return s.side(side).mentality }

// Players returns a side's on-pitch players. The slice is the engine's
// own; callers must treat it as read-only.
func (s *State) Players(side Side) []*Player { return s.side(side).lineup }

// Bench returns a side's bench players, read-only to callers.
func (s *State) Bench(side Side) []*Player { return s.side(side).bench }

// humanSide reports which side, if any, is human-controlled.
func (s *State) humanSide() Side {
	if s.home.human {
		return SideHome
	}
	if s.away.human {
		return SideAway
	}
	return SideNone
}

// player finds a player on either side's pitch or bench.
func (s *State) player(id int) (*Player, Side) {
	for _, side := range []Side{SideHome, SideAway} {
		t := s.side(side)
		for _, p := range append(append([]*Player{}, t.lineup...), t.bench...) {
			if p.ID == id {
				return p, side
			}
		}
	}
	return nil, SideNone
}

// carrier returns the current ball carrier, nil when there is none.
func (s *State) carrier() *Player {
	if s.CarrierID == 0 {
		return nil
	}
	p, _ := s.player(s.CarrierID)
	return p
}

// activePlayers filters a side's lineup to those allowed to take part.
func (s *State) activePlayers(side Side) []*Player {
	var out []*Player
	for _, p := range s.side(side).lineup {
		if p.Active() {
			out = append(out, p)
		}
	}
	return out
}

// activeInCategory filters further by positional band.
func (s *State) activeInCategory(side Side, cat football.Category) []*Player {
	var out []*Player
	for _, p := range s.activePlayers(side) {
		if football.CategoryOf(p.Role) == cat {
			out = append(out, p)
		}
	}
	return out
}

// activeInRoles filters by an explicit role list.
func (s *State) activeInRoles(side Side, roles []football.Role) []*Player {
	var out []*Player
	for _, p := range s.activePlayers(side) {
		for _, role := range roles {
			if p.Role == role {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// goalkeeper returns a side's active keeper, nil when none remains.
func (s *State) goalkeeper(side Side) *Player {
	keepers := s.activeInCategory(side, football.CategoryGoalkeeper)
	if len(keepers) == 0 {
		return nil
	}
	return keepers[0]
}

// pickRandom selects uniformly from a non-empty slice.
func (s *State) pickRandom(players []*Player) *Player {
	return players[s.resolver.Src().Intn(len(players))]
}

// nearestOpponent finds the closest active opponent to p.
func (s *State) nearestOpponent(p *Player, opponents Side) *Player {
	var nearest *Player
	best := 0.0
	for _, opp := range s.activePlayers(opponents) {
		dx := opp.Pos.X - p.Pos.X
		dy := opp.Pos.Y - p.Pos.Y
		d := dx*dx + dy*dy
		if nearest == nil || d < best {
			nearest = opp
			best = d
		}
	}
	return nearest
}

// addEvent appends a log entry for the current minute.
func (s *State) addEvent(cat match.EventCategory, text string, playerIDs ...int) match.Event {
	ev := match.Event{Minute: s.Minute, Category: cat, Text: text, PlayerIDs: playerIDs}
	s.Events = append(s.Events, ev)
	return ev
}

// Finalize converts a finished match into the shared record form. It is
// the only command valid at FullTime.
func (s *State) Finalize() (*match.Match, error) {
	if s.Phase != PhaseFullTime {
		return nil, fmt.Errorf("cannot finalize match in phase %q", s.Phase)
	}
	homeScore, awayScore := s.HomeScore, s.AwayScore
	homeStats, awayStats := s.home.stats, s.away.stats
	rec := &match.Match{
		ID:          s.ID,
		HomeClubID:  s.home.clubID,
		AwayClubID:  s.away.clubID,
		Date:        s.Date,
		HomeScore:   &homeScore,
		AwayScore:   &awayScore,
		HomeStats:   &homeStats,
		AwayStats:   &awayStats,
		Events:      s.Events,
		Cards:       s.Cards,
		Injuries:    s.Injuries,
		PlayerStats: map[int]*match.PlayerStats{},
	}
	for _, t := range []*team{s.home, s.away} {
		for _, p := range append(append([]*Player{}, t.lineup...), t.bench...) {
			stats := p.Stats
			rec.PlayerStats[p.ID] = &stats
		}
	}
	return rec, nil
}
