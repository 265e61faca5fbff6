package live

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
)

// Pause stops the external driver from ticking. Wall-clock time is the
// caller's concern; the engine only flags.
func (s *State) Pause() {
	s.Paused = true
}

// Resume clears the pause flag and fires the phase transitions that are
// gated on it: kickoff from PreMatch and the restart from HalfTime.
func (s *State) Resume() {
	if s.PendingSub != nil {
		// The prompt is still outstanding; resuming anyway is allowed
		// but the caller was warned.
		log.Warn("Resuming with forced substitution outstanding", "matchID", s.ID, "playerID", s.PendingSub.PlayerID)
	}
	s.Paused = false
	switch s.Phase {
	case PhasePreMatch:
		s.Phase = PhaseFirstHalf
		s.Attacking = s.kickoffSide
		s.Zone = ZoneMidfield
		s.CarrierID = 0
		s.addEvent(match.EventInfo, fmt.Sprintf("Kick off: %s v %s", s.home.name, s.away.name))
	case PhaseHalfTime:
		s.Phase = PhaseSecondHalf
		s.Attacking = s.kickoffSide.Opposite()
		s.Zone = ZoneMidfield
		s.CarrierID = 0
		s.LastPasser = 0
		s.addEvent(match.EventInfo, "The second half is under way")
	}
}

// Substitute swaps a lineup player for a bench player. The engine guards
// the substitution cap and slot membership; richer validation is the
// caller's job. The incoming player inherits the outgoing slot's role,
// anchor and instructions.
func (s *State) Substitute(side Side, outID, inID int) error {
	t := s.side(side)
	if t.subsMade >= MaxSubstitutions {
		return fmt.Errorf("substitution limit of %d reached", MaxSubstitutions)
	}
	var out, in *Player
	outIdx, inIdx := -1, -1
	for i, p := range t.lineup {
		if p.ID == outID {
			out, outIdx = p, i
		}
	}
	for i, p := range t.bench {
		if p.ID == inID {
			in, inIdx = p, i
		}
	}
	if out == nil {
		return fmt.Errorf("player %d is not on the pitch", outID)
	}
	if in == nil {
		return fmt.Errorf("player %d is not on the bench", inID)
	}

	in.Role = out.Role
	in.Anchor = out.Anchor
	in.Instructions = out.Instructions
	in.Pos = out.Pos

	t.lineup[outIdx] = in
	t.bench[inIdx] = out
	t.subsMade++

	if s.CarrierID == outID {
		s.CarrierID = 0
	}
	if s.PendingSub != nil && s.PendingSub.Side == side && s.PendingSub.PlayerID == outID {
		s.PendingSub = nil
	}
	s.addEvent(match.EventSubstitution, s.comms.Generate(match.EventSubstitution, map[string]string{
		"in":  in.Name,
		"out": out.Name,
	}), in.ID, out.ID)
	log.Debug("Substitution made", "matchID", s.ID, "side", side, "out", out.Name, "in", in.Name, "used", t.subsMade)
	return nil
}

// SetMentality changes a side's posture mid-match.
func (s *State) SetMentality(side Side, m football.Mentality) {
	s.side(side).mentality = m
}

// Shout is the fixed vocabulary of touchline instructions.
type Shout string

const (
	ShoutPushForward Shout = "push_forward"
	ShoutDropDeeper  Shout = "drop_deeper"
	ShoutPressMore   Shout = "press_more"
	ShoutGoDirect    Shout = "go_direct"
	ShoutCalmDown    Shout = "calm_down"
)

// ApplyShout nudges a side's shape or instructions. Shouts act on
// default positions and instruction dials, not directly on duel odds.
func (s *State) ApplyShout(side Side, shout Shout) error {
	t := s.side(side)
	switch shout {
	case ShoutPushForward:
		t.shapeOffset += 4
	case ShoutDropDeeper:
		t.shapeOffset -= 4
	case ShoutPressMore:
		for _, p := range t.lineup {
			p.Instructions.Pressing = football.TendencyHigh
			p.Instructions.TacklingIntensity = football.TendencyHigh
		}
	case ShoutGoDirect:
		for _, p := range t.lineup {
			p.Instructions.PassingDirectness = football.TendencyHigh
		}
	case ShoutCalmDown:
		t.shapeOffset = 0
		for _, p := range t.lineup {
			p.Instructions.Pressing = football.TendencyNormal
			p.Instructions.TacklingIntensity = football.TendencyNormal
		}
	default:
		return fmt.Errorf("unknown shout %q", shout)
	}
	if t.shapeOffset > 12 {
		t.shapeOffset = 12
	}
	if t.shapeOffset < -12 {
		t.shapeOffset = -12
	}
	return nil
}

// SetPlayerInstructions amends one player's role, anchor and dials.
func (s *State) SetPlayerInstructions(side Side, playerID int, role football.Role, anchor football.Coordinate, instr football.Instructions) error {
	for _, p := range s.side(side).lineup {
		if p.ID == playerID {
			p.Role = role
			if anchor != (football.Coordinate{}) {
				p.Anchor = anchor
			} else {
				p.Anchor = football.DefaultPosition(role)
			}
			p.Instructions = instr
			return nil
		}
	}
	return fmt.Errorf("player %d is not on the pitch", playerID)
}

// DismissForcedSubstitution clears a red-card prompt: the side simply
// plays a player short. Injury prompts need an actual substitution.
func (s *State) DismissForcedSubstitution() error {
	if s.PendingSub == nil {
		return fmt.Errorf("no forced substitution pending")
	}
	if s.PendingSub.Reason != SubReasonRedCard {
		return fmt.Errorf("forced substitution for reason %q cannot be dismissed", s.PendingSub.Reason)
	}
	s.PendingSub = nil
	return nil
}
