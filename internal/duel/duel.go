// Package duel holds the probability model shared by the live and the
// statistical match engines. Every contested action in either engine
// resolves through the same primitive so the two simulators cannot drift
// apart statistically.
package duel

import (
	"math/rand"
	"time"
)

// Source abstracts the random stream so tests can script outcomes.
// The production implementation wraps math/rand.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// NewSource returns a time-seeded production source.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Tuned base chances per action type. Both engines read these; they are
// not configurable per match.
const (
	BasePassProgression = 0.78
	BaseDribble         = 0.45
	BaseShotOnTarget    = 0.75
	BaseChanceCreation  = 0.50

	XGBaseline  = 0.12
	XGBigChance = 0.40
	// One in five shots is a clear-cut chance.
	BigChanceOdds = 0.20

	// Statistical engine shot model.
	QuickOnTargetOdds = 0.45
	GoalFloor         = 0.05
)

// Resolver decides contested actions from attribute differentials.
type Resolver struct {
	src Source
}

// NewResolver creates a Resolver drawing from src.
func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Src exposes the underlying random source for non-duel draws (event
// selection, target picks) so an engine carries a single stream.
func (r *Resolver) Src() Source {
	return r.src
}

// Resolve runs one duel: actor attribute against defender attribute on
// top of a base chance, shifted by the actor's fatigue. The clamp keeps
// every action possible but never certain.
func (r *Resolver) Resolve(actorSkill, defenderSkill int, baseChance, fatigueMod float64) bool {
	return r.src.Float64() < Chance(actorSkill, defenderSkill, baseChance, fatigueMod)
}

// Chance computes the success probability a Resolve call draws against.
func Chance(actorSkill, defenderSkill int, baseChance, fatigueMod float64) float64 {
	chance := baseChance + float64(actorSkill-defenderSkill)/200 + fatigueMod
	return clamp(chance, 0.05, 0.95)
}

// ShotXG returns a shot's expected-goals value and whether it was a big
// chance. Called once per shot by both engines.
func (r *Resolver) ShotXG() (xg float64, bigChance bool) {
	if r.src.Float64() < BigChanceOdds {
		return XGBigChance, true
	}
	return XGBaseline, false
}

// SaveAttempt resolves a keeper trying to deny a shot that is on target.
// Returns true when the keeper saves.
func (r *Resolver) SaveAttempt(keeperPositioning, shooterShooting int) bool {
	return r.Resolve(keeperPositioning, shooterShooting, BaseShotOnTarget, 0)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
