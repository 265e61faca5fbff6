package commentary

import "github.com/dmoller/touchline/internal/match"

var templates = map[match.EventCategory][]string{
	match.EventGoal: {
		"GOAL! {scorer} finds the net!",
		"{scorer} scores! What a moment!",
		"It's in! {scorer} makes no mistake from there!",
		"A clinical finish from {scorer}!",
	},
	match.EventSave: {
		"{keeper} gets down well to deny {shooter}!",
		"Great save! {keeper} keeps it out!",
		"{shooter} is denied by a strong hand from {keeper}!",
	},
	match.EventNearMiss: {
		"{shooter} drags it wide! So close!",
		"Off target from {shooter}, the chance goes begging.",
		"{shooter} lets fly but it sails over the bar.",
	},
	match.EventTackle: {
		"{tackler} wins it back with a firm challenge on {carrier}.",
		"Strong tackle by {tackler}!",
		"{tackler} steps in and breaks up the attack.",
	},
	match.EventInterception: {
		"{interceptor} reads it and cuts out the pass.",
		"Sloppy from {carrier}, and {interceptor} pounces.",
		"The ball is picked off by {interceptor}.",
	},
	match.EventFoul: {
		"{fouler} brings down {fouled}. Free kick.",
		"The referee whistles, {fouler} with a late challenge on {fouled}.",
		"{fouled} is clipped by {fouler} and goes to ground.",
	},
	match.EventYellowCard: {
		"Yellow card for {player}.",
		"{player} goes into the book.",
		"The referee reaches for a yellow, shown to {player}.",
	},
	match.EventRedCard: {
		"RED CARD! {player} is off!",
		"{player} is given his marching orders!",
		"A second yellow and {player} is sent off!",
	},
	match.EventInjury: {
		"{player} is down and needs treatment.",
		"Worrying signs, {player} can't continue.",
		"{player} pulls up and signals to the bench.",
	},
	match.EventSubstitution: {
		"{in} comes on for {out}.",
		"A change: {out} makes way for {in}.",
	},
	match.EventHighlight: {
		"{team} are knocking it around nicely.",
		"A spell of pressure from {team}.",
		"{team} probe for an opening.",
	},
}
