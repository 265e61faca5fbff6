// Package commentary turns structured match events into display text.
// It is stateless: templates are picked at random per call and the same
// event can produce different lines on consecutive calls.
package commentary

import (
	"strings"

	"github.com/dmoller/touchline/internal/duel"
	"github.com/dmoller/touchline/internal/match"
)

// Generator renders commentary lines for event categories.
type Generator struct {
	src duel.Source
}

// New creates a Generator drawing template picks from src.
func New(src duel.Source) *Generator {
	return &Generator{src: src}
}

// Generate picks a template for the category and substitutes the named
// placeholders. A placeholder missing from the map is left literal; an
// unknown category falls back to a generic line. Never returns "".
func (g *Generator) Generate(category match.EventCategory, placeholders map[string]string) string {
	pool, ok := templates[category]
	if !ok {
		pool = templates[match.EventHighlight]
	}
	line := pool[g.src.Intn(len(pool))]
	for name, value := range placeholders {
		line = strings.ReplaceAll(line, "{"+name+"}", value)
	}
	return line
}
