// Package quicksim resolves a whole match in one call. It replays the
// same duel model the live engine uses across an abstracted possession
// loop, with no per-minute state and no positions, so a league round of
// AI matches resolves in microseconds while staying statistically in
// line with the live simulator.
package quicksim

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/physio"
	"github.com/google/uuid"
)

// Engine is stateless between runs; a single Engine may be shared by
// concurrent callers simulating independent matches.
type Engine struct {
	src duel.Source
}

// New creates an Engine drawing from src.
func New(src duel.Source) *Engine {
	return &Engine{src: src}
}

type sideState struct {
	squad    football.Squad
	ratings  ratings
	score    int
	stats    match.Stats
	starters []*football.Player
	roles    map[int]football.Role
}

// Run simulates one full match between two squads on the given date and
// returns a fully-populated record: score, stats, a sparse event log,
// cards, injuries, and per-player statistics for every starter.
func (e *Engine) Run(home, away football.Squad, date time.Time) *match.Match {
	resolver := duel.NewResolver(e.src)

	h := newSideState(home)
	a := newSideState(away)

	rec := &match.Match{
		ID:          uuid.NewString(),
		HomeClubID:  home.Club.ID,
		AwayClubID:  away.Club.ID,
		Date:        date,
		PlayerStats: map[int]*match.PlayerStats{},
	}
	for _, side := range []*sideState{h, a} {
		for _, p := range side.starters {
			rec.PlayerStats[p.ID] = &match.PlayerStats{PlayerID: p.ID, Rating: 6.0}
		}
	}

	homeShare := possessionShare(h.ratings, a.ratings)
	units := possessionUnits(home.Tactics.Mentality, away.Tactics.Mentality)

	for i := 0; i < units; i++ {
		atk, def := h, a
		if e.src.Float64() >= homeShare {
			atk, def = a, h
		}
		e.runPossessionUnit(resolver, rec, atk, def)
	}

	e.resolveCards(rec, h, a)
	e.resolveInjuries(rec, date, h, a)
	e.fillDescriptiveStats(h, a, homeShare)

	rec.HomeScore = &h.score
	rec.AwayScore = &a.score
	rec.HomeStats = &h.stats
	rec.AwayStats = &a.stats
	rec.HomeLineup = lineupSnapshot(home.Tactics)
	rec.AwayLineup = lineupSnapshot(away.Tactics)

	log.Debug("Statistical match resolved",
		"matchID", rec.ID, "home", home.Club.Name, "away", away.Club.Name,
		"score", *rec.HomeScore, "against", *rec.AwayScore)
	return rec
}

func newSideState(squad football.Squad) *sideState {
	s := &sideState{
		squad:   squad,
		ratings: computeRatings(squad),
		roles:   map[int]football.Role{},
	}
	for _, slot := range squad.Tactics.Lineup {
		if slot == nil {
			continue
		}
		if rec, ok := squad.Players[slot.PlayerID]; ok {
			s.starters = append(s.starters, rec)
			s.roles[rec.ID] = slot.Role
		}
	}
	return s
}

// possessionShare derives the home side's share of the ball from the
// midfield battle.
func possessionShare(home, away ratings) float64 {
	total := home.midfield + away.midfield
	if total == 0 {
		return 0.5
	}
	return home.midfield / total
}

// runPossessionUnit plays one abstract attack: a midfield-gated advance
// into the final third, then an attack-vs-defense-gated shot. Mirrors
// the live engine's zone 2 to zone 3 progression without positions.
func (e *Engine) runPossessionUnit(resolver *duel.Resolver, rec *match.Match, atk, def *sideState) {
	midTotal := atk.ratings.midfield + def.ratings.midfield
	if midTotal == 0 || e.src.Float64() >= atk.ratings.midfield/midTotal*0.7 {
		return
	}

	shotTotal := atk.ratings.attack + def.ratings.defense
	if shotTotal == 0 || e.src.Float64() >= atk.ratings.attack/shotTotal {
		return
	}

	shooter := e.pickByCategory(atk, football.CategoryForward)
	if shooter == nil {
		shooter = e.pickByCategory(atk, football.CategoryMidfielder)
	}
	if shooter == nil {
		// Nobody up front to take the chance; the unit fizzles out.
		return
	}

	atk.stats.Shots++
	ps := rec.PlayerStats[shooter.ID]
	ps.Shots++
	xg, big := resolver.ShotXG()
	atk.stats.XG += xg
	if big {
		atk.stats.BigChances++
	}

	if e.src.Float64() >= duel.QuickOnTargetOdds {
		return
	}
	atk.stats.ShotsOnTarget++

	goalChance := atk.ratings.attack / (atk.ratings.attack + def.ratings.defense + def.ratings.goalkeeping) * 0.8
	if goalChance < duel.GoalFloor {
		goalChance = duel.GoalFloor
	}
	if e.src.Float64() >= goalChance {
		return
	}

	atk.score++
	ps.Goals++
	boostRating(ps, 1.0)
	minute := 1 + e.src.Intn(90)
	ids := []int{shooter.ID}
	if assister := e.pickAssister(atk, shooter.ID); assister != nil {
		aps := rec.PlayerStats[assister.ID]
		aps.Assists++
		boostRating(aps, 0.8)
		ids = append(ids, assister.ID)
	}
	rec.Events = append(rec.Events, match.Event{
		Minute:    minute,
		Category:  match.EventGoal,
		Text:      "GOAL! " + shooter.Name + " scores for " + atk.squad.Club.Name + "!",
		PlayerIDs: ids,
	})
}

// pickByCategory selects a random starter assigned to the band.
func (e *Engine) pickByCategory(side *sideState, cat football.Category) *football.Player {
	var pool []*football.Player
	for _, p := range side.starters {
		if football.CategoryOf(side.roles[p.ID]) == cat {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[e.src.Intn(len(pool))]
}

// pickAssister credits a teammate with the assist three times out of
// four; solo goals get none.
func (e *Engine) pickAssister(side *sideState, scorerID int) *football.Player {
	if e.src.Float64() >= 0.75 {
		return nil
	}
	var pool []*football.Player
	for _, p := range side.starters {
		cat := football.CategoryOf(side.roles[p.ID])
		if p.ID != scorerID && (cat == football.CategoryMidfielder || cat == football.CategoryForward) {
			pool = append(pool, p)
		}
	}
	if len(pool) == 0 {
		return nil
	}
	return pool[e.src.Intn(len(pool))]
}

// resolveCards iterates a random foul count per side with a flat card
// chance per foul; escalation runs through the same discipline rules as
// the live engine.
func (e *Engine) resolveCards(rec *match.Match, sides ...*sideState) {
	for _, side := range sides {
		discipline := map[int]*physio.Discipline{}
		fouls := 2 + e.src.Intn(9)
		side.stats.Fouls = fouls
		for i := 0; i < fouls; i++ {
			if e.src.Float64() >= 0.25 || len(side.starters) == 0 {
				continue
			}
			offender := side.starters[e.src.Intn(len(side.starters))]
			d := discipline[offender.ID]
			if d == nil {
				d = &physio.Discipline{}
				discipline[offender.ID] = d
			}
			if d.SentOff {
				continue
			}
			shown := d.Book(match.CardYellow)
			rec.Cards = append(rec.Cards, match.CardEvent{PlayerID: offender.ID, Card: shown})
			cat := match.EventYellowCard
			text := "Yellow card for " + offender.Name
			if shown == match.CardRed {
				cat = match.EventRedCard
				text = offender.Name + " is sent off"
			}
			rec.Events = append(rec.Events, match.Event{
				Minute:    1 + e.src.Intn(90),
				Category:  cat,
				Text:      text,
				PlayerIDs: []int{offender.ID},
			})
		}
	}
}

// resolveInjuries rolls each starter at most once, weighted against
// natural fitness, and reuses the shared injury generator.
func (e *Engine) resolveInjuries(rec *match.Match, date time.Time, sides ...*sideState) {
	for _, side := range sides {
		for _, p := range side.starters {
			chance := 0.10 * (1.3 - float64(p.Attributes.NaturalFitness)/100)
			if e.src.Float64() >= chance {
				continue
			}
			inj := physio.GenerateInjury(date, e.src)
			rec.Injuries = append(rec.Injuries, inj.Event(p.ID))
			rec.Events = append(rec.Events, match.Event{
				Minute:    1 + e.src.Intn(90),
				Category:  match.EventInjury,
				Text:      p.Name + " picked up an injury (" + inj.Diagnosis + ")",
				PlayerIDs: []int{p.ID},
			})
		}
	}
}

// fillDescriptiveStats invents the cosmetic numbers that have no
// gameplay consequence: passes, accuracy, corners, offsides.
func (e *Engine) fillDescriptiveStats(h, a *sideState, homeShare float64) {
	h.stats.Possession = float64(int(homeShare*100 + 0.5))
	a.stats.Possession = 100 - h.stats.Possession
	for _, side := range []*sideState{h, a} {
		side.stats.Passes = 300 + e.src.Intn(400)
		side.stats.PassAccuracy = 70 + e.src.Float64()*23
		side.stats.Corners = 2 + e.src.Intn(10)
		side.stats.Offsides = e.src.Intn(6)
		side.stats.Tackles = 10 + e.src.Intn(15)
	}
}

func lineupSnapshot(t football.Tactics) []football.LineupPlayer {
	var out []football.LineupPlayer
	for _, slot := range t.Lineup {
		if slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

func boostRating(ps *match.PlayerStats, delta float64) {
	ps.Rating += delta
	if ps.Rating > 10 {
		ps.Rating = 10
	}
}
