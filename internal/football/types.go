package football

// Attributes is the fixed set of ability scores for a player, each 0-99.
type Attributes struct {
	Passing        int `json:"passing"`
	Dribbling      int `json:"dribbling"`
	Shooting       int `json:"shooting"`
	Tackling       int `json:"tackling"`
	Heading        int `json:"heading"`
	Crossing       int `json:"crossing"`
	Aggression     int `json:"aggression"`
	Creativity     int `json:"creativity"`
	Positioning    int `json:"positioning"`
	Teamwork       int `json:"teamwork"`
	WorkRate       int `json:"work_rate"`
	Pace           int `json:"pace"`
	Stamina        int `json:"stamina"`
	Strength       int `json:"strength"`
	NaturalFitness int `json:"natural_fitness"`
}

// Player is the persistent season-spanning record. The simulation core
// reads it but never mutates it; per-match state lives in live.Player.
type Player struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	NaturalRole  Role           `json:"natural_role"`
	Attributes   Attributes     `json:"attributes"`
	Familiarity  map[Role]int   `json:"familiarity"` // role -> 0-100 affinity
	Morale       int            `json:"morale"`
	MatchFitness int            `json:"match_fitness"`
}

// FamiliarityWith returns the player's affinity for a role. A player is
// always fully familiar with their natural role.
func (p *Player) FamiliarityWith(role Role) int {
	if role == p.NaturalRole {
		return 100
	}
	if f, ok := p.Familiarity[role]; ok {
		return f
	}
	return 0
}

// Club identifies a team. Exactly one club per save is human-controlled.
type Club struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Human bool   `json:"human"`
}

// Mentality is a team's overall posture for a match.
type Mentality string

const (
	MentalityDefensive Mentality = "defensive"
	MentalityBalanced  Mentality = "balanced"
	MentalityOffensive Mentality = "offensive"
)

// Instructions are the per-slot in/out-of-possession settings a manager
// assigns to a lineup player. Values are coarse enums, not percentages.
type Instructions struct {
	ShootingTendency  Tendency `json:"shooting_tendency"`
	TacklingIntensity Tendency `json:"tackling_intensity"`
	Pressing          Tendency `json:"pressing"`
	PassingDirectness Tendency `json:"passing_directness"`
	Width             Tendency `json:"width"`
	Dribbling         Tendency `json:"dribbling"`
	Crossing          Tendency `json:"crossing"`
	Marking           Tendency `json:"marking"`
}

// Tendency is a three-step instruction dial.
type Tendency string

const (
	TendencyLow    Tendency = "low"
	TendencyNormal Tendency = "normal"
	TendencyHigh   Tendency = "high"
)

// DefaultInstructions returns a neutral instruction set.
func DefaultInstructions() Instructions {
	return Instructions{
		ShootingTendency:  TendencyNormal,
		TacklingIntensity: TendencyNormal,
		Pressing:          TendencyNormal,
		PassingDirectness: TendencyNormal,
		Width:             TendencyNormal,
		Dribbling:         TendencyNormal,
		Crossing:          TendencyNormal,
		Marking:           TendencyNormal,
	}
}

// Coordinate is a normalized pitch position, both axes 0-100. X runs from
// the team's own goal line (0) to the opposition goal line (100).
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LineupPlayer is one filled tactical slot: which player, in which role,
// anchored where, with which instructions.
type LineupPlayer struct {
	PlayerID     int          `json:"player_id"`
	Role         Role         `json:"role"`
	Position     Coordinate   `json:"position"`
	Instructions Instructions `json:"instructions"`
}

// Tactics is a club's full match setup as produced by the (external)
// squad-selection layer. Slots may be nil when unfilled.
type Tactics struct {
	Lineup    [11]*LineupPlayer `json:"lineup"`
	Bench     [7]*LineupPlayer  `json:"bench"`
	Mentality Mentality         `json:"mentality"`
}

// Squad bundles everything a match engine needs to know about one club:
// identity, tactics, and the persistent records for every referenced
// player. Assembled by the (external) squad-selection layer.
type Squad struct {
	Club    Club            `json:"club"`
	Tactics Tactics         `json:"tactics"`
	Players map[int]*Player `json:"players"`
}

// StartersFilled counts non-nil lineup slots.
func (t *Tactics) StartersFilled() int {
	n := 0
	for _, lp := range t.Lineup {
		if lp != nil {
			n++
		}
	}
	return n
}
