package utils

// SeenFilter drops repeated strings while keeping first-seen order.
type SeenFilter struct {
	seen map[string]bool
}

// NewSeenFilter creates a filter comparing strings exactly.
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seen: make(map[string]bool)}
}

// ShouldInclude checks if a word should be included in results (not a duplicate)
// Returns true if the word should be included, false if it's a duplicate
func (f *SeenFilter) ShouldInclude(word string) bool {
	if f.seen[word] {
		return false
	}
	f.seen[word] = true
	return true
}
