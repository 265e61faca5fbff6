package quicksim

import (
	"github.com/dmoller/touchline/internal/football"
)

// neutralRating is the fallback for malformed input (fewer than eleven
// filled lineup slots). Degrade, don't fail.
const neutralRating = 50.0

// ratings are one side's per-unit strength figures.
type ratings struct {
	goalkeeping float64
	defense     float64
	midfield    float64
	attack      float64
}

// computeRatings averages each starter's relevant attributes for the
// band of the role they are actually assigned, weighted by positional
// familiarity (0.5 at zero affinity, 1.0 at full).
func computeRatings(squad football.Squad) ratings {
	if squad.Tactics.StartersFilled() < 11 {
		return ratings{neutralRating, neutralRating, neutralRating, neutralRating}
	}

	sums := map[football.Category]float64{}
	counts := map[football.Category]int{}
	for _, slot := range squad.Tactics.Lineup {
		if slot == nil {
			continue
		}
		rec, ok := squad.Players[slot.PlayerID]
		if !ok {
			continue
		}
		cat := football.CategoryOf(slot.Role)
		weight := 0.5 + float64(rec.FamiliarityWith(slot.Role))/200
		sums[cat] += bandScore(rec.Attributes, cat) * weight
		counts[cat]++
	}

	r := ratings{
		goalkeeping: bandAverage(sums, counts, football.CategoryGoalkeeper),
		defense:     bandAverage(sums, counts, football.CategoryDefender),
		midfield:    bandAverage(sums, counts, football.CategoryMidfielder),
		attack:      bandAverage(sums, counts, football.CategoryForward),
	}
	return r.applyMentality(squad.Tactics.Mentality)
}

func bandAverage(sums map[football.Category]float64, counts map[football.Category]int, cat football.Category) float64 {
	if counts[cat] == 0 {
		return neutralRating
	}
	return sums[cat] / float64(counts[cat])
}

// bandScore picks the attributes that matter for a positional band.
func bandScore(a football.Attributes, cat football.Category) float64 {
	switch cat {
	case football.CategoryGoalkeeper:
		return float64(a.Positioning*2+a.Strength+a.Pace) / 4
	case football.CategoryDefender:
		return float64(a.Tackling+a.Positioning+a.Heading+a.Strength) / 4
	case football.CategoryMidfielder:
		return float64(a.Passing+a.Creativity+a.Teamwork+a.WorkRate) / 4
	default:
		return float64(a.Shooting+a.Dribbling+a.Pace+a.Crossing) / 4
	}
}

// applyMentality scales defense and attack: a defensive posture trades
// attacking threat for solidity, an offensive one the inverse.
func (r ratings) applyMentality(m football.Mentality) ratings {
	switch m {
	case football.MentalityDefensive:
		r.defense *= 1.10
		r.attack *= 0.85
	case football.MentalityOffensive:
		r.attack *= 1.10
		r.defense *= 0.85
	}
	return r
}

// possessionUnits sizes the match's abstract attack count from the two
// postures: two open teams trade many more attacks.
func possessionUnits(home, away football.Mentality) int {
	switch {
	case home == football.MentalityOffensive && away == football.MentalityOffensive:
		return 150
	case home == football.MentalityDefensive && away == football.MentalityDefensive:
		return 90
	default:
		return 120
	}
}
