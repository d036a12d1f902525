package dictionary

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultSpanishFields are the accepted names of the Spanish field.
var DefaultSpanishFields = []string{"espanol", "español"}

// Schema describes where a record keeps each side of a translation pair.
type Schema struct {
	SpanishFields []string
	TargetField   string
}

// IsSpanishField reports whether name is one of the schema's Spanish field names,
// ignoring case and Unicode composition ("español" typed as n + combining tilde matches).
func (s Schema) IsSpanishField(name string) bool {
	folded := norm.NFC.String(strings.ToLower(name))
	for _, candidate := range s.spanishFields() {
		if folded == norm.NFC.String(strings.ToLower(candidate)) {
			return true
		}
	}
	return false
}

func (s Schema) spanishFields() []string {
	if len(s.SpanishFields) == 0 {
		return DefaultSpanishFields
	}
	return s.SpanishFields
}

// Spanish returns the first non-empty Spanish value of rec.
func (s Schema) Spanish(rec Record) string {
	for _, f := range rec {
		if f.Value != "" && s.IsSpanishField(f.Name) {
			return f.Value
		}
	}
	return ""
}

// Target returns the indigenous value of rec.
func (s Schema) Target(rec Record) string {
	v, _ := rec.Get(s.TargetField)
	return v
}

// DetectSchema inspects the first record of a dataset.
// With an empty languageKey the target is the single non-Spanish field; zero or
// several candidates fail. A non-empty languageKey must name a non-Spanish field
// of the first record.
func DetectSchema(records []Record, languageKey string) (Schema, error) {
	schema := Schema{SpanishFields: DefaultSpanishFields}
	if len(records) == 0 {
		return schema, &SchemaError{Reason: "dataset has no records"}
	}

	first := records[0]
	var candidates []string
	for _, f := range first {
		if !schema.IsSpanishField(f.Name) {
			candidates = append(candidates, f.Name)
		}
	}

	if languageKey != "" {
		for _, name := range candidates {
			if name == languageKey || strings.EqualFold(name, languageKey) {
				schema.TargetField = name
				return schema, nil
			}
		}
		return schema, &SchemaError{Reason: "language field " + languageKey + " not found", Fields: first.Names()}
	}

	switch len(candidates) {
	case 0:
		return schema, &SchemaError{Reason: "no indigenous language field", Fields: first.Names()}
	case 1:
		schema.TargetField = candidates[0]
		return schema, nil
	default:
		return schema, &SchemaError{Reason: "ambiguous indigenous language field", Fields: candidates}
	}
}
