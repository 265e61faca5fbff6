// Package physio generates injury diagnoses and handles card escalation.
// Both match engines share it so a knock costs the same whether the match
// was simulated live or statistically.
package physio

import (
	"time"

	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/match"
)

// Injury is a diagnosis with an unadjusted layoff. The owning club's
// medical department quality may shorten the layoff downstream; this
// package always reports the raw figure.
type Injury struct {
	Diagnosis  string
	Days       int
	ReturnDate time.Time
}

type injuryBand struct {
	odds      float64 // cumulative draw threshold
	diagnosis string
	minDays   int
	maxDays   int
}

// Categorical severity distribution: 60% muscular across three grades,
// 20% sprains across two, 15% bruising, 5% severe.
var injuryTable = []injuryBand{
	{0.25, "grade 1 muscle strain", 3, 7},
	{0.45, "grade 2 muscle strain", 10, 21},
	{0.60, "grade 3 muscle tear", 28, 56},
	{0.72, "ankle sprain", 7, 14},
	{0.80, "knee ligament sprain", 14, 28},
	{0.95, "deep bruising", 2, 6},
	{0.9667, "ACL rupture", 180, 270},
	{0.9834, "metatarsal fracture", 60, 90},
	{1.01, "meniscus tear", 90, 150},
}

// GenerateInjury draws a diagnosis and duration for a player hurt on
// matchDate. The draw does not depend on the player; fitness weighting
// happens at the call site where injury incidence is decided.
func GenerateInjury(matchDate time.Time, src duel.Source) Injury {
	roll := src.Float64()
	for _, band := range injuryTable {
		if roll < band.odds {
			days := band.minDays
			if span := band.maxDays - band.minDays; span > 0 {
				days += src.Intn(span + 1)
			}
			return Injury{
				Diagnosis:  band.diagnosis,
				Days:       days,
				ReturnDate: matchDate.AddDate(0, 0, days),
			}
		}
	}
	// Unreachable: the last band's threshold exceeds 1.
	return Injury{Diagnosis: "knock", Days: 1, ReturnDate: matchDate.AddDate(0, 0, 1)}
}

// Event converts an injury into the shared match-record form.
func (i Injury) Event(playerID int) match.InjuryEvent {
	return match.InjuryEvent{PlayerID: playerID, Diagnosis: i.Diagnosis, ReturnDate: i.ReturnDate}
}

// Discipline tracks one player's cards within a match and applies the
// one-way second-yellow-to-red escalation.
type Discipline struct {
	Yellows int
	SentOff bool
}

// Book applies a card and reports the effective card shown. A yellow to
// an already-booked player comes back as a red with SentOff set; a
// straight red sets SentOff directly. Booking a sent-off player is a
// caller bug and returns red without further state change.
func (d *Discipline) Book(card match.CardType) match.CardType {
	if d.SentOff {
		return match.CardRed
	}
	if card == match.CardRed {
		d.SentOff = true
		return match.CardRed
	}
	d.Yellows++
	if d.Yellows >= 2 {
		d.SentOff = true
		return match.CardRed
	}
	return match.CardYellow
}
