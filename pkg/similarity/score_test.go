package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreRules(t *testing.T) {
	testCases := []struct {
		a, b        string
		expected    float64
		description string
	}{
		{"perro", "perro", 1.0, "Identical"},
		{"  Perro ", "perro", 1.0, "Identical after lower+trim"},
		{"casa grande", "la casa grande", 0.9, "Multi-word containment"},
		{"la casa grande", "casa grande", 0.9, "Containment in either direction"},
		{"grande casa", "casa muy grande", 0.85, "Every query word present"},
		{"perro", "perro negro", 0.8, "One exact word"},
		{"perro negro feo", "gato negro feo bonito", 0.9, "Two exact words"},
		{"perros", "perro", 0.4, "Partial substring"},
		{"casa", "casas grandes", 0.4, "Partial against multi-word text"},
		{"el perros", "perro", 0.2, "Partial with short-word penalty"},
		{"agua", "fuego", 0.0, "No overlap"},
		{"", "perro", 0.0, "Empty query has no words"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Score(tc.a, tc.b), 1e-9)
		})
	}
}

func TestScoreIdentity(t *testing.T) {
	for _, x := range []string{"a", "chichi", "casa grande", "ñandú", "tlahtolli in"} {
		assert.Equal(t, 1.0, Score(x, x), x)
	}
}

// Four exact words land on 0.7 + 0.4, above 1.0. Kept on purpose.
func TestScoreExactRungIsNotClamped(t *testing.T) {
	got := Score("uno dos tres cuatro cinco", "cuatro tres dos uno")
	assert.InDelta(t, 1.1, got, 1e-9)
	assert.Greater(t, got, 1.0)
}

func TestScoreIsDirectional(t *testing.T) {
	// both query words overlap the single text word
	assert.InDelta(t, 0.5, Score("per perro", "perros"), 1e-9)
	// swapped, only one query word exists to count
	assert.InDelta(t, 0.4, Score("perros", "per perro"), 1e-9)

	assert.InDelta(t, 0.5, Score("perros gatos", "perro gato casa"), 1e-9)
	assert.InDelta(t, 0.3+0.1*2-0.2, Score("mi perros gatos", "perro gato"), 1e-9)
}
