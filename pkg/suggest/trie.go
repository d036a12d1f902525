package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/traductor/internal/utils"
)

// searchTrie collects every key under lowerPrefix together with its translation,
// sorted by key.
func searchTrie(trie *patricia.Trie, lowerPrefix string) []Completion {
	if trie == nil {
		return []Completion{}
	}

	var found []Completion
	err := trie.VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		translation, ok := item.(string)
		if !ok {
			log.Errorf("Unknown item type: %T for key %s", item, p)
			return nil
		}
		found = append(found, Completion{Key: string(p), Translation: translation})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Key < found[j].Key
	})
	return found
}

// applyCapitalization copies the capital letters of the typed prefix onto key
// and capitalizes the translation when the prefix starts upper-case.
func applyCapitalization(c Completion, prefix string, info *utils.CapitalInfo) Completion {
	if info == nil {
		return c
	}
	c.Key = utils.ApplyCapitals(c.Key, info)
	if utils.StartsUpper(prefix) {
		c.Translation = utils.CapitalizeFirst(c.Translation)
	}
	return c
}
