package dictionary

import "strings"

// Entry is one expanded Spanish/indigenous pair, lower-cased and trimmed.
type Entry struct {
	Spanish    string `json:"espanol" msgpack:"es"`
	Indigenous string `json:"indigena" msgpack:"ind"`
}

// Source returns the side of the entry a query in direction dir is matched against.
func (e Entry) Source(dir Direction) string {
	if dir == IndigenousToSpanish {
		return e.Indigenous
	}
	return e.Spanish
}

// Target returns the side of the entry that translates a query in direction dir.
func (e Entry) Target(dir Direction) string {
	if dir == IndigenousToSpanish {
		return e.Spanish
	}
	return e.Indigenous
}

// ExpandRecord turns one record into its variant cross product.
// "a, b" x "x, y" yields four entries; a record missing either side yields none.
func ExpandRecord(rec Record, schema Schema) []Entry {
	spanish := cleanField(schema.Spanish(rec))
	indigenous := cleanField(schema.Target(rec))
	if spanish == "" || indigenous == "" {
		return nil
	}

	esVariants := SplitVariants(spanish)
	indVariants := SplitVariants(indigenous)
	entries := make([]Entry, 0, len(esVariants)*len(indVariants))
	for _, es := range esVariants {
		for _, ind := range indVariants {
			entries = append(entries, Entry{Spanish: es, Indigenous: ind})
		}
	}
	return entries
}

// SplitVariants splits a comma-separated synonym list, trimming and dropping empty pieces.
func SplitVariants(s string) []string {
	parts := strings.Split(s, ",")
	variants := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			variants = append(variants, p)
		}
	}
	return variants
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
