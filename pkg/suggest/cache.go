package suggest

import (
	"strconv"
	"strings"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bastiangx/traductor/pkg/dictionary"
)

// CacheStats reports the occupancy of a RankCache.
type CacheStats struct {
	Entries  int `json:"entries" msgpack:"entries"`
	Capacity int `json:"capacity" msgpack:"capacity"`
	Hits     int `json:"hits" msgpack:"hits"`
}

// RankCache memoizes ranked suggestions for recently asked queries.
// Entries are evicted least recently used first. A cache belongs to one
// corpus; build a new one whenever the dictionary is reloaded.
type RankCache struct {
	cache    *lru.Cache[string, []Suggestion]
	capacity int
	hits     atomic.Int64
}

// NewRankCache creates a cache holding at most maxEntries queries.
func NewRankCache(maxEntries int) *RankCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	cache, _ := lru.New[string, []Suggestion](maxEntries)
	return &RankCache{cache: cache, capacity: maxEntries}
}

func cacheKey(query string, dir dictionary.Direction, topN int) string {
	return string(dir) + "\x00" + strconv.Itoa(topN) + "\x00" + strings.ToLower(strings.TrimSpace(query))
}

// Rank returns the cached ranking for the request or computes it with r.
// Callers get their own copy of the slice.
func (rc *RankCache) Rank(r *Ranker, query string, dir dictionary.Direction, corpus []dictionary.Entry, topN int) []Suggestion {
	key := cacheKey(query, dir, topN)
	if cached, ok := rc.cache.Get(key); ok {
		rc.hits.Add(1)
		return append([]Suggestion(nil), cached...)
	}

	ranked := r.Rank(query, dir, corpus, topN)
	rc.cache.Add(key, append([]Suggestion(nil), ranked...))
	return ranked
}

// Stats returns cache counters.
func (rc *RankCache) Stats() CacheStats {
	return CacheStats{
		Entries:  rc.cache.Len(),
		Capacity: rc.capacity,
		Hits:     int(rc.hits.Load()),
	}
}
