// Package dictionary builds the bidirectional Spanish/indigenous lookup tables from dataset records.
//
// Records are expanded into entries (one per synonym-variant pair), the entries feed
// an exact-match Index, and the full ordered entry list is kept as the corpus that
// suggestion ranking scores against.
package dictionary

import (
	"github.com/charmbracelet/log"
)

// Dictionary is the immutable result of one dataset load.
type Dictionary struct {
	Language string
	Schema   Schema
	Index    *Index
	Corpus   []Entry
	stats    Stats
}

// Stats summarizes a build.
type Stats struct {
	Records     int `json:"records" msgpack:"records"`
	Skipped     int `json:"skipped" msgpack:"skipped"`
	Entries     int `json:"entries" msgpack:"entries"`
	SpanishKeys int `json:"spanish_keys" msgpack:"spanish_keys"`
	TargetKeys  int `json:"target_keys" msgpack:"target_keys"`
	Overwrites  int `json:"overwrites" msgpack:"overwrites"`
}

// Load detects the schema from records and builds the dictionary.
// languageKey may be empty to auto-detect the indigenous field.
func Load(records []Record, languageKey string) (*Dictionary, error) {
	schema, err := DetectSchema(records, languageKey)
	if err != nil {
		return nil, err
	}
	return Build(records, schema), nil
}

// Build expands every record with schema and indexes the result.
func Build(records []Record, schema Schema) *Dictionary {
	corpus := make([]Entry, 0, len(records))
	skipped := 0
	for _, rec := range records {
		entries := ExpandRecord(rec, schema)
		if len(entries) == 0 {
			skipped++
			continue
		}
		corpus = append(corpus, entries...)
	}

	index := NewIndex(corpus)
	d := &Dictionary{
		Language: schema.TargetField,
		Schema:   schema,
		Index:    index,
		Corpus:   corpus,
		stats: Stats{
			Records:     len(records),
			Skipped:     skipped,
			Entries:     len(corpus),
			SpanishKeys: index.Len(SpanishToIndigenous),
			TargetKeys:  index.Len(IndigenousToSpanish),
			Overwrites:  index.Overwrites(),
		},
	}
	if d.stats.Overwrites > 0 {
		log.Debugf("dictionary %s: %d keys overwritten by later entries", d.Language, d.stats.Overwrites)
	}
	log.Debugf("dictionary %s built: records=%d entries=%d skipped=%d", d.Language, len(records), len(corpus), skipped)
	return d
}

// Lookup is a shorthand for d.Index.Lookup.
func (d *Dictionary) Lookup(key string, dir Direction) (string, bool) {
	return d.Index.Lookup(key, dir)
}

// Stats returns the build summary.
func (d *Dictionary) Stats() Stats {
	return d.stats
}
