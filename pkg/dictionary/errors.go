package dictionary

import (
	"fmt"
	"strings"
)

// SchemaError reports a dataset whose indigenous-language field cannot be determined.
type SchemaError struct {
	Reason string
	Fields []string
}

func (e *SchemaError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid dataset schema: " + e.Reason
	}
	return fmt.Sprintf("invalid dataset schema: %s (fields: %s)", e.Reason, strings.Join(e.Fields, ", "))
}

// LoadStage is the step of a dataset load that failed.
type LoadStage int

const (
	// StageFormat: the source has no supported file extension.
	StageFormat LoadStage = iota
	// StageFetch: the file could not be opened or the URL could not be fetched.
	StageFetch
	// StageDecode: the dataset was read but is not valid for its format.
	StageDecode
)

// LoadError reports a failure fetching or decoding a dataset.
type LoadError struct {
	Source string
	Stage  LoadStage
	Err    error
}

// Unreachable reports whether the source itself could not be read, as opposed
// to being read and found invalid.
func (e *LoadError) Unreachable() bool {
	return e.Stage == StageFetch
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
