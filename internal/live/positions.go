package live

import "github.com/dmoller/touchline/internal/football"

// easingFactor is how far a player moves toward their target each
// minute. Pure smoothing for display purposes, not physical velocity.
const easingFactor = 0.10

// absolutePosition converts a team-relative anchor (own goal at x=0)
// into pitch coordinates. The away side attacks toward x=0, so both
// axes mirror.
func absolutePosition(anchor football.Coordinate, side Side) football.Coordinate {
	if side == SideHome {
		return anchor
	}
	return football.Coordinate{X: 100 - anchor.X, Y: 100 - anchor.Y}
}

// mentalityShift pushes a team's shape up or down the pitch, in
// team-relative x units.
func mentalityShift(m football.Mentality) float64 {
	switch m {
	case football.MentalityOffensive:
		return 8
	case football.MentalityDefensive:
		return -8
	default:
		return 0
	}
}

// zoneShift drags the shape toward the ball's third. The zone is stored
// from the attacking team's perspective, so the defending team sees it
// inverted.
func (s *State) zoneShift(side Side) float64 {
	zone := s.Zone
	if side != s.Attacking {
		zone = 4 - zone
	}
	return float64(zone-ZoneMidfield) * 6
}

// updatePositions recomputes every active player's target and eases the
// actual position a fraction of the way there. Sent-off players stay
// where they left the pitch; nothing downstream reads their position.
func (s *State) updatePositions() {
	carrier := s.carrier()
	for _, side := range []Side{SideHome, SideAway} {
		t := s.side(side)
		shift := mentalityShift(t.mentality) + t.shapeOffset + s.zoneShift(side)
		for _, p := range t.lineup {
			if !p.Active() {
				continue
			}
			target := p.Anchor
			target.X += shift
			abs := absolutePosition(target, side)
			if carrier != nil && carrier.ID != p.ID {
				// The whole shape leans toward the ball.
				abs.X += (carrier.Pos.X - abs.X) * 0.15
			}
			abs.X = clampCoord(abs.X)
			abs.Y = clampCoord(abs.Y)
			p.Pos.X += (abs.X - p.Pos.X) * easingFactor
			p.Pos.Y += (abs.Y - p.Pos.Y) * easingFactor
		}
	}
}

func clampCoord(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
