package processor

import (
	"time"

	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
)

// Engine resolves a whole match in a single call. Satisfied by the
// statistical engine.
type Engine interface {
	Run(home, away football.Squad, date time.Time) *match.Match
}
