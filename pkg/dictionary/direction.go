package dictionary

import (
	"fmt"
	"strings"
)

// Direction selects which side of the dictionary a query is written in.
type Direction string

const (
	SpanishToIndigenous Direction = "es_indigena"
	IndigenousToSpanish Direction = "indigena_es"
)

// ParseDirection accepts the canonical names plus the short forms used by the
// CLI and the form field ("espanol" meant "from Spanish").
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "es_indigena", "es", "espanol", "español", "es-ind", "to-indigenous":
		return SpanishToIndigenous, nil
	case "indigena_es", "ind", "indigena", "ind-es", "to-spanish":
		return IndigenousToSpanish, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Reverse returns the opposite direction.
func (d Direction) Reverse() Direction {
	if d == IndigenousToSpanish {
		return SpanishToIndigenous
	}
	return IndigenousToSpanish
}

func (d Direction) String() string { return string(d) }
