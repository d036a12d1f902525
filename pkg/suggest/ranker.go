// Package suggest ranks "did you mean" suggestions over the expanded corpus and
// completes dictionary keys by prefix.
package suggest

import (
	"fmt"
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/similarity"
)

// DefaultMinScore is the score a suggestion has to exceed to be kept.
const DefaultMinScore = 0.2

// Confidence buckets a similarity score.
type Confidence int

const (
	Low Confidence = iota
	Medium
	High
)

// ConfidenceFor labels score: High above 0.8, Medium above 0.5, Low otherwise.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score > 0.8:
		return High
	case score > 0.5:
		return Medium
	}
	return Low
}

func (c Confidence) String() string {
	switch c {
	case High:
		return "High"
	case Medium:
		return "Medium"
	}
	return "Low"
}

// Spanish returns the label shown to users and sent on the wire.
func (c Confidence) Spanish() string {
	switch c {
	case High:
		return "Alta"
	case Medium:
		return "Media"
	}
	return "Baja"
}

// ParseConfidence accepts both the Spanish and the English labels.
func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "Alta", "High":
		return High, nil
	case "Media", "Medium":
		return Medium, nil
	case "Baja", "Low":
		return Low, nil
	}
	return Low, fmt.Errorf("unknown confidence %q", s)
}

func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.Spanish()), nil
}

func (c *Confidence) UnmarshalText(text []byte) error {
	parsed, err := ParseConfidence(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

var (
	_ msgpack.CustomEncoder = Confidence(0)
	_ msgpack.CustomDecoder = (*Confidence)(nil)
)

func (c Confidence) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(c.Spanish())
}

func (c *Confidence) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return c.UnmarshalText([]byte(s))
}

// Suggestion is one ranked candidate translation.
type Suggestion struct {
	Translation string     `json:"traduccion" msgpack:"traduccion"`
	Matched     string     `json:"palabraOriginal" msgpack:"palabraOriginal"`
	Score       float64    `json:"similitud" msgpack:"similitud"`
	Confidence  Confidence `json:"confianza" msgpack:"confianza"`
}

// Ranker scores a query against every corpus entry.
type Ranker struct {
	MinScore float64
}

// NewRanker creates a ranker keeping scores above minScore.
// A negative minScore selects DefaultMinScore.
func NewRanker(minScore float64) *Ranker {
	if minScore < 0 {
		minScore = DefaultMinScore
	}
	return &Ranker{MinScore: minScore}
}

// Rank ranks corpus with the default threshold.
func Rank(query string, dir dictionary.Direction, corpus []dictionary.Entry, topN int) []Suggestion {
	return (&Ranker{MinScore: DefaultMinScore}).Rank(query, dir, corpus, topN)
}

// Rank scores query against the source side of every entry, keeps the entries
// above MinScore, orders them by descending score (ties keep corpus order),
// keeps the best entry per distinct target and truncates to topN.
// topN <= 0 returns every distinct target.
func (r *Ranker) Rank(query string, dir dictionary.Direction, corpus []dictionary.Entry, topN int) []Suggestion {
	var scored []Suggestion
	for _, e := range corpus {
		score := similarity.Score(query, e.Source(dir))
		if score <= r.MinScore {
			continue
		}
		scored = append(scored, Suggestion{
			Translation: e.Target(dir),
			Matched:     e.Source(dir),
			Score:       score,
			Confidence:  ConfidenceFor(score),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	seen := make(map[string]bool, len(scored))
	results := scored[:0]
	for _, s := range scored {
		if seen[s.Translation] {
			continue
		}
		seen[s.Translation] = true
		results = append(results, s)
		if topN > 0 && len(results) == topN {
			break
		}
	}
	return results
}
