package live

import (
	"fmt"

	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/dmoller/touchline/internal/physio"
)

// Tick advances the match by one simulated minute and returns the events
// generated. A paused match, or one outside an active half, ticks to a
// no-op; the caller resumes explicitly at kickoff and half time.
func (s *State) Tick() []match.Event {
	if s.Paused || (s.Phase != PhaseFirstHalf && s.Phase != PhaseSecondHalf) {
		return nil
	}
	before := len(s.Events)

	s.Minute++
	if s.checkPhaseTransition() {
		return s.Events[before:]
	}

	s.decayStamina()
	s.updatePositions()
	s.possessionMinutes[s.Attacking]++

	if s.CarrierID == 0 {
		if !s.selectCarrier() {
			s.recomputePossession()
			return s.Events[before:]
		}
	}

	s.resolvePossession()
	s.foulCheck()
	s.recomputePossession()
	return s.Events[before:]
}

// checkPhaseTransition fires at the end of each half. Returns true when
// a transition consumed the tick.
func (s *State) checkPhaseTransition() bool {
	switch s.Phase {
	case PhaseFirstHalf:
		if s.Minute >= 45 {
			s.Phase = PhaseHalfTime
			s.Paused = true
			s.addEvent(match.EventInfo, fmt.Sprintf("Half time: %s %d-%d %s", s.home.name, s.HomeScore, s.AwayScore, s.away.name))
			return true
		}
	case PhaseSecondHalf:
		if s.Minute >= 90+s.stoppageTime() {
			s.Phase = PhaseFullTime
			s.Paused = true
			s.addEvent(match.EventInfo, fmt.Sprintf("Full time: %s %d-%d %s", s.home.name, s.HomeScore, s.AwayScore, s.away.name))
			return true
		}
	}
	return false
}

// stoppageTime grows with the event log: eventful halves run longer.
func (s *State) stoppageTime() int {
	added := 1 + len(s.Events)/15
	if added > 6 {
		added = 6
	}
	return added
}

func (s *State) decayStamina() {
	for _, t := range []*team{s.home, s.away} {
		for _, p := range t.lineup {
			if p.Discipline.SentOff {
				continue
			}
			nf := p.Attr.NaturalFitness
			if nf < 1 {
				nf = 1
			}
			p.Stamina -= 0.3 / (float64(nf) / 100)
			if p.Stamina < 0 {
				p.Stamina = 0
			}
		}
	}
}

// selectCarrier gives the loose ball to a random attacking midfielder,
// falling back to any outfield player. Returns false when nobody on the
// attacking side can take it, in which case the tick ends quietly.
func (s *State) selectCarrier() bool {
	candidates := s.activeInCategory(s.Attacking, football.CategoryMidfielder)
	if len(candidates) == 0 {
		for _, p := range s.activePlayers(s.Attacking) {
			if football.CategoryOf(p.Role) != football.CategoryGoalkeeper {
				candidates = append(candidates, p)
			}
		}
	}
	if len(candidates) == 0 {
		return false
	}
	s.CarrierID = s.pickRandom(candidates).ID
	return true
}

// resolvePossession runs exactly one possession action for the carrier
// based on the current zone.
func (s *State) resolvePossession() {
	carrier := s.carrier()
	if carrier == nil {
		return
	}
	switch s.Zone {
	case ZoneDefensive:
		s.buildOutOfDefence(carrier)
	case ZoneMidfield:
		s.progressThroughMidfield(carrier)
	case ZoneAttacking:
		s.attackFinalThird(carrier)
	}
}

// buildOutOfDefence is the zone 1 action: a progression pass against the
// nearest opponent's pressing aggression.
func (s *State) buildOutOfDefence(carrier *Player) {
	opp := s.nearestOpponent(carrier, s.Attacking.Opposite())
	oppAggression := 50
	if opp != nil {
		oppAggression = opp.Attr.Aggression
	}
	if s.resolver.Resolve(carrier.Attr.Passing, oppAggression, duel.BasePassProgression, carrier.fatigueMod()) {
		s.completePass(carrier, s.activeInRoles(s.Attacking, football.CentralMidfieldRoles), ZoneMidfield)
		return
	}
	s.turnover(opp, match.EventInterception, map[string]string{
		"carrier":     carrier.Name,
		"interceptor": opponentName(opp),
	})
}

// progressThroughMidfield is the zone 2 action: usually a forward pass,
// sometimes a dribble, both contested by the nearest opponent's tackling.
func (s *State) progressThroughMidfield(carrier *Player) {
	opp := s.nearestOpponent(carrier, s.Attacking.Opposite())
	oppTackling := 50
	if opp != nil {
		oppTackling = opp.Attr.Tackling
	}
	if s.resolver.Src().Float64() < 0.65 {
		if s.resolver.Resolve(carrier.Attr.Passing, oppTackling, duel.BasePassProgression, carrier.fatigueMod()) {
			s.completePass(carrier, s.activeInCategory(s.Attacking, football.CategoryForward), ZoneAttacking)
			return
		}
		s.turnover(opp, match.EventInterception, map[string]string{
			"carrier":     carrier.Name,
			"interceptor": opponentName(opp),
		})
		return
	}
	if s.resolver.Resolve(carrier.Attr.Dribbling, oppTackling, duel.BaseDribble, carrier.fatigueMod()) {
		carrier.Stats.Dribbles++
		carrier.boostRating(0.1)
		s.Zone = ZoneAttacking
		return
	}
	if opp != nil {
		opp.Stats.Tackles++
		opp.boostRating(0.2)
		s.side(s.Attacking.Opposite()).stats.Tackles++
	}
	s.turnover(opp, match.EventTackle, map[string]string{
		"carrier": carrier.Name,
		"tackler": opponentName(opp),
	})
}

// attackFinalThird is the zone 3 action: a creativity duel gates the
// shot, then the shared shot model resolves against the keeper.
func (s *State) attackFinalThird(carrier *Player) {
	opp := s.nearestOpponent(carrier, s.Attacking.Opposite())
	oppPositioning := 50
	if opp != nil {
		oppPositioning = opp.Attr.Positioning
	}
	if !s.resolver.Resolve(carrier.Attr.Creativity, oppPositioning, duel.BaseChanceCreation, carrier.fatigueMod()) {
		if opp != nil {
			opp.Stats.Tackles++
			opp.boostRating(0.2)
			s.side(s.Attacking.Opposite()).stats.Tackles++
		}
		s.turnover(opp, match.EventTackle, map[string]string{
			"carrier": carrier.Name,
			"tackler": opponentName(opp),
		})
		return
	}
	s.takeShot(carrier)
}

func (s *State) takeShot(shooter *Player) {
	attacking := s.side(s.Attacking)
	attacking.stats.Shots++
	shooter.Stats.Shots++
	xg, bigChance := s.resolver.ShotXG()
	attacking.stats.XG += xg
	if bigChance {
		attacking.stats.BigChances++
	}

	keeper := s.goalkeeper(s.Attacking.Opposite())
	if keeper == nil {
		// Every keeper off the pitch: the shot simply goes in.
		attacking.stats.ShotsOnTarget++
		s.scoreGoal(shooter)
		return
	}

	if !s.resolver.Resolve(shooter.Attr.Shooting, keeper.Attr.Positioning, duel.BaseShotOnTarget, shooter.fatigueMod()) {
		s.addEvent(match.EventNearMiss, s.comms.Generate(match.EventNearMiss, map[string]string{"shooter": shooter.Name}), shooter.ID)
		s.CarrierID = keeper.ID
		s.switchPossession()
		return
	}
	attacking.stats.ShotsOnTarget++

	if s.resolver.SaveAttempt(keeper.Attr.Positioning, shooter.Attr.Shooting) {
		keeper.boostRating(0.3)
		s.addEvent(match.EventSave, s.comms.Generate(match.EventSave, map[string]string{
			"keeper":  keeper.Name,
			"shooter": shooter.Name,
		}), keeper.ID, shooter.ID)
		s.CarrierID = keeper.ID
		s.switchPossession()
		return
	}
	s.scoreGoal(shooter)
}

func (s *State) scoreGoal(scorer *Player) {
	if s.Attacking == SideHome {
		s.HomeScore++
	} else {
		s.AwayScore++
	}
	scorer.Stats.Goals++
	scorer.boostRating(1.0)

	placeholders := map[string]string{"scorer": scorer.Name}
	ids := []int{scorer.ID}
	if s.LastPasser != 0 && s.LastPasser != scorer.ID {
		if passer, side := s.player(s.LastPasser); passer != nil && side == s.Attacking {
			passer.Stats.Assists++
			passer.boostRating(0.8)
			ids = append(ids, passer.ID)
		}
	}
	s.addEvent(match.EventGoal, s.comms.Generate(match.EventGoal, placeholders), ids...)

	// Kickoff for the conceding side.
	s.Attacking = s.Attacking.Opposite()
	s.Zone = ZoneMidfield
	s.CarrierID = 0
	s.LastPasser = 0
}

// completePass moves the ball up a zone to a random eligible target. No
// eligible target means the action silently fails to resolve.
func (s *State) completePass(passer *Player, targets []*Player, newZone int) {
	passer.Stats.Passes++
	s.side(s.Attacking).stats.Passes++
	var eligible []*Player
	for _, p := range targets {
		if p.ID != passer.ID {
			eligible = append(eligible, p)
		}
	}
	if len(eligible) == 0 {
		return
	}
	s.LastPasser = passer.ID
	s.CarrierID = s.pickRandom(eligible).ID
	s.Zone = newZone
}

// turnover hands the ball to the intercepting opponent and flips the
// zone to their perspective.
func (s *State) turnover(interceptor *Player, cat match.EventCategory, placeholders map[string]string) {
	if interceptor != nil {
		s.addEvent(cat, s.comms.Generate(cat, placeholders), interceptor.ID)
		s.CarrierID = interceptor.ID
	} else {
		s.CarrierID = 0
	}
	s.switchPossession()
}

func (s *State) switchPossession() {
	s.Zone = 4 - s.Zone
	s.Attacking = s.Attacking.Opposite()
	s.LastPasser = 0
}

// foulCheck runs after the possession action: a possible foul, a rare
// injury for the fouled player, and a referee-dependent card.
func (s *State) foulCheck() {
	carrier := s.carrier()
	if carrier == nil {
		return
	}
	opp := s.nearestOpponent(carrier, s.Attacking.Opposite())
	if opp == nil {
		return
	}
	foulChance := 0.05 + float64(carrier.Attr.Aggression+opp.Attr.Aggression)/2000
	if s.resolver.Src().Float64() >= foulChance {
		return
	}

	fouler, fouled := opp, carrier
	foulerSide := s.Attacking.Opposite()
	if s.resolver.Src().Float64() < 0.5 {
		fouler, fouled = carrier, opp
		foulerSide = s.Attacking
	}
	s.side(foulerSide).stats.Fouls++
	s.addEvent(match.EventFoul, s.comms.Generate(match.EventFoul, map[string]string{
		"fouler": fouler.Name,
		"fouled": fouled.Name,
	}), fouler.ID, fouled.ID)

	if s.resolver.Src().Float64() < 0.01 {
		s.injure(fouled, foulerSide.Opposite())
	}

	if s.resolver.Src().Float64() < 0.1+s.RefereeStrictness*0.2 {
		s.bookPlayer(fouler, foulerSide)
	}
}

func (s *State) injure(victim *Player, victimSide Side) {
	victim.Injured = true
	s.InjuredIDs = append(s.InjuredIDs, victim.ID)
	inj := physio.GenerateInjury(s.Date, s.resolver.Src())
	s.Injuries = append(s.Injuries, inj.Event(victim.ID))
	s.addEvent(match.EventInjury, s.comms.Generate(match.EventInjury, map[string]string{"player": victim.Name}), victim.ID)
	if s.CarrierID == victim.ID {
		s.CarrierID = 0
	}
	if victimSide == s.humanSide() {
		s.PendingSub = &ForcedSubstitution{Side: victimSide, PlayerID: victim.ID, Reason: SubReasonInjury}
		s.Paused = true
	}
}

func (s *State) bookPlayer(fouler *Player, foulerSide Side) {
	shown := fouler.Discipline.Book(match.CardYellow)
	s.Cards = append(s.Cards, match.CardEvent{PlayerID: fouler.ID, Card: shown})
	if shown == match.CardRed {
		s.addEvent(match.EventRedCard, s.comms.Generate(match.EventRedCard, map[string]string{"player": fouler.Name}), fouler.ID)
		if s.CarrierID == fouler.ID {
			s.CarrierID = 0
		}
		if foulerSide == s.humanSide() {
			// No replacement is required; the prompt is dismissible.
			s.PendingSub = &ForcedSubstitution{Side: foulerSide, PlayerID: fouler.ID, Reason: SubReasonRedCard}
			s.Paused = true
		}
		return
	}
	s.addEvent(match.EventYellowCard, s.comms.Generate(match.EventYellowCard, map[string]string{"player": fouler.Name}), fouler.ID)
}

// recomputePossession rebalances the percentage split from accumulated
// possession minutes. The two sides always sum to 100.
func (s *State) recomputePossession() {
	total := s.possessionMinutes[SideHome] + s.possessionMinutes[SideAway]
	if total == 0 {
		s.home.stats.Possession = 50
		s.away.stats.Possession = 50
		return
	}
	s.home.stats.Possession = s.possessionMinutes[SideHome] / total * 100
	s.away.stats.Possession = 100 - s.home.stats.Possession
}

func opponentName(p *Player) string {
	if p == nil {
		return "the defender"
	}
	return p.Name
}
