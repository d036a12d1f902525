package suggest

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/traductor/internal/utils"
	"github.com/bastiangx/traductor/pkg/dictionary"
)

// Completion is a dictionary key matching a typed prefix.
type Completion struct {
	Key         string `json:"k" msgpack:"k"`
	Translation string `json:"t" msgpack:"t"`
}

// Completer answers prefix queries over the keys of one index direction.
type Completer struct {
	trie      *patricia.Trie
	dir       dictionary.Direction
	totalKeys int
	maxKeyLen int
}

// NewCompleter indexes every key of ix in direction dir.
func NewCompleter(ix *dictionary.Index, dir dictionary.Direction) *Completer {
	c := &Completer{trie: patricia.NewTrie(), dir: dir}
	for _, key := range ix.Keys(dir) {
		value, _ := ix.Lookup(key, dir)
		c.AddKey(key, value)
	}
	return c
}

// AddKey inserts or replaces key.
func (c *Completer) AddKey(key, translation string) {
	if !c.trie.Insert(patricia.Prefix(key), translation) {
		c.trie.Set(patricia.Prefix(key), translation)
	} else {
		c.totalKeys++
	}
	if n := len([]rune(key)); n > c.maxKeyLen {
		c.maxKeyLen = n
	}
}

// Complete returns up to limit keys starting with prefix in lexicographic order.
// The capital letters of prefix are carried over to the returned keys.
// limit <= 0 means no limit.
func (c *Completer) Complete(prefix string, limit int) []Completion {
	lowerPrefix, capitals := utils.ProcessCapitals(strings.TrimSpace(prefix))

	found := searchTrie(c.trie, lowerPrefix)
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	for i := range found {
		found[i] = applyCapitalization(found[i], prefix, capitals)
	}
	return found
}

// CompleterStats describes the keys indexed by a Completer.
type CompleterStats struct {
	Keys      int `json:"keys" msgpack:"keys"`
	MaxKeyLen int `json:"max_key_len" msgpack:"max_key_len"`
}

// Stats returns statistics about the indexed keys.
func (c *Completer) Stats() CompleterStats {
	return CompleterStats{Keys: c.totalKeys, MaxKeyLen: c.maxKeyLen}
}
