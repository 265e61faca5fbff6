package live

import (
	"time"

	"github.com/dmoller/touchline/internal/commentary"
	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/physio"
)

// Phase is the match state machine's position. Transitions only move
// forward: PreMatch -> FirstHalf -> HalfTime -> SecondHalf -> FullTime.
type Phase string

const (
	PhasePreMatch   Phase = "pre_match"
	PhaseFirstHalf  Phase = "first_half"
	PhaseHalfTime   Phase = "half_time"
	PhaseSecondHalf Phase = "second_half"
	PhaseFullTime   Phase = "full_time"
)

// Side identifies one of the two teams in a match.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
	SideNone Side = ""
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	if s == SideHome {
		return SideAway
	}
	return SideHome
}

// Ball zones from the attacking team's perspective.
const (
	ZoneDefensive = 1
	ZoneMidfield  = 2
	ZoneAttacking = 3
)

// MaxSubstitutions is the per-side cap on substitutions in one match.
const MaxSubstitutions = 5

// SubReason explains why a forced substitution is pending.
type SubReason string

const (
	SubReasonInjury  SubReason = "injury"
	SubReasonRedCard SubReason = "red_card"
)

// ForcedSubstitution is raised when a human-side player is injured or
// sent off. The caller must substitute or dismiss before resuming.
type ForcedSubstitution struct {
	Side     Side      `json:"side"`
	PlayerID int       `json:"player_id"`
	Reason   SubReason `json:"reason"`
}

// Player is the ephemeral per-match state derived from a persistent
// record plus a tactical slot. It exists only for one match; its stats
// are folded into season records externally at full time.
type Player struct {
	ID   int                 `json:"id"`
	Name string              `json:"name"`
	Attr football.Attributes `json:"attributes"`

	Stamina    float64           `json:"stamina"`
	Discipline physio.Discipline `json:"discipline"`
	Injured    bool              `json:"injured"`

	Role         football.Role         `json:"role"`
	Instructions football.Instructions `json:"instructions"`
	// Anchor is the tactical slot coordinate in team-relative terms
	// (own goal at x=0); Pos is the current absolute pitch position.
	Anchor football.Coordinate `json:"anchor"`
	Pos    football.Coordinate `json:"position"`

	Stats match.PlayerStats `json:"stats"`
}

// Active reports whether the player may take part in play.
func (p *Player) Active() bool {
	return !p.Discipline.SentOff && !p.Injured
}

// fatigueMod converts lost stamina into a duel penalty, at most -0.1.
func (p *Player) fatigueMod() float64 {
	return -(100 - p.Stamina) / 1000
}

// boostRating raises the match rating, capped at 10.
func (p *Player) boostRating(delta float64) {
	p.Stats.Rating += delta
	if p.Stats.Rating > 10 {
		p.Stats.Rating = 10
	}
	if p.Stats.Rating < 0 {
		p.Stats.Rating = 0
	}
}

// team is one side's live state.
type team struct {
	clubID    int
	name      string
	human     bool
	mentality football.Mentality
	lineup    []*Player
	bench     []*Player
	subsMade  int
	// shapeOffset shifts the whole team's target x; shouts move it.
	shapeOffset float64
	stats       match.Stats
}

// TeamSetup is one club's input to Setup.
type TeamSetup = football.Squad

// State is the aggregate root for one in-progress live match. It is
// exclusively owned by its caller; the engine never shares it across
// matches and expects at most one mutation in flight at a time.
type State struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Minute int       `json:"minute"`
	Phase  Phase     `json:"phase"`
	Paused bool      `json:"paused"`

	HomeScore int `json:"home_score"`
	AwayScore int `json:"away_score"`

	RefereeStrictness float64 `json:"referee_strictness"`

	Attacking  Side `json:"attacking"`
	CarrierID  int  `json:"carrier_id"` // 0 = no carrier
	Zone       int  `json:"zone"`
	LastPasser int  `json:"last_passer"`

	PendingSub *ForcedSubstitution `json:"pending_sub,omitempty"`
	InjuredIDs []int               `json:"injured_ids,omitempty"`

	Events   []match.Event       `json:"events"`
	Cards    []match.CardEvent   `json:"cards,omitempty"`
	Injuries []match.InjuryEvent `json:"injuries,omitempty"`

	home *team
	away *team

	possessionMinutes map[Side]float64
	kickoffSide       Side

	resolver *duel.Resolver
	comms    *commentary.Generator
}
