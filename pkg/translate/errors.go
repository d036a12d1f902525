package translate

import "errors"

var (
	// ErrEmptyQuery is returned for blank or whitespace-only input.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNotLoaded is returned when no dictionary has been loaded successfully.
	ErrNotLoaded = errors.New("no dictionary loaded")
)

// Message returns the text shown to the user for err. Errors without a
// dedicated message fall back to err.Error().
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyQuery):
		return "Introduce una palabra o frase."
	case errors.Is(err, ErrNotLoaded):
		return "Selecciona un diccionario primero."
	}
	return err.Error()
}
