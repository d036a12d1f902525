package dictionary

// Index is the bidirectional exact-match table.
//
// Both directions are keyed by normalized text. A repeated key keeps the value of
// the last entry inserted, so a later synonym hides an earlier reverse mapping;
// Overwrites counts how often that happened. Keys enumerate in the order they were
// first inserted, which keeps fuzzy scans deterministic.
type Index struct {
	forward     map[string]string
	reverse     map[string]string
	forwardKeys []string
	reverseKeys []string
	overwrites  int
}

// NewIndex builds the index from expanded entries in corpus order.
func NewIndex(entries []Entry) *Index {
	ix := &Index{
		forward: make(map[string]string, len(entries)),
		reverse: make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		ix.Insert(e)
	}
	return ix
}

// Insert adds e to both directions, overwriting existing keys.
func (ix *Index) Insert(e Entry) {
	ix.forwardKeys = put(ix.forward, ix.forwardKeys, e.Spanish, e.Indigenous, &ix.overwrites)
	ix.reverseKeys = put(ix.reverse, ix.reverseKeys, e.Indigenous, e.Spanish, &ix.overwrites)
}

func put(m map[string]string, keys []string, k, v string, overwrites *int) []string {
	if old, exists := m[k]; exists {
		if old != v {
			*overwrites++
		}
	} else {
		keys = append(keys, k)
	}
	m[k] = v
	return keys
}

// Lookup returns the exact translation of key in direction dir.
func (ix *Index) Lookup(key string, dir Direction) (string, bool) {
	v, ok := ix.table(dir)[key]
	return v, ok
}

// Keys returns the keys of one direction in first-insertion order.
// The slice is shared and must not be modified.
func (ix *Index) Keys(dir Direction) []string {
	if dir == IndigenousToSpanish {
		return ix.reverseKeys
	}
	return ix.forwardKeys
}

// Len returns the number of distinct keys in direction dir.
func (ix *Index) Len(dir Direction) int {
	return len(ix.table(dir))
}

// Overwrites returns how many insertions replaced a different value for an existing key.
func (ix *Index) Overwrites() int {
	return ix.overwrites
}

func (ix *Index) table(dir Direction) map[string]string {
	if dir == IndigenousToSpanish {
		return ix.reverse
	}
	return ix.forward
}
