package translate

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/phonetic"
	"github.com/bastiangx/traductor/pkg/suggest"
)

// RecordCache persists the records of successfully fetched datasets so a
// source that later becomes unreachable can still be loaded.
type RecordCache interface {
	Records(source string) ([]dictionary.Record, bool, error)
	SaveRecords(source string, records []dictionary.Record) error
}

const rankCacheSize = 256

// Options configures a Session.
type Options struct {
	Translator Config
	// TopN is the default number of suggestions returned by Translate.
	TopN     int
	MinScore float64
}

// DefaultOptions returns the options used by the CLI and servers when no config file says otherwise.
func DefaultOptions() Options {
	return Options{
		Translator: DefaultConfig(),
		TopN:       5,
		MinScore:   suggest.DefaultMinScore,
	}
}

// Result is the combined answer to one translation request.
type Result struct {
	Query       string               `json:"q" msgpack:"q"`
	Direction   dictionary.Direction `json:"dir" msgpack:"dir"`
	Suggestions []suggest.Suggestion `json:"sugerencias" msgpack:"s"`
	Phrase      string               `json:"traduccion" msgpack:"p"`
	// Listing is true when Phrase enumerates several alternatives.
	Listing bool `json:"listado" msgpack:"l"`
	// Speakable reports whether Phrase can be handed to speech playback.
	Speakable bool `json:"audio" msgpack:"a"`
}

// Info describes the state of a session.
type Info struct {
	Loaded   bool             `json:"loaded" msgpack:"loaded"`
	Source   string           `json:"source,omitempty" msgpack:"source,omitempty"`
	Language string           `json:"language,omitempty" msgpack:"language,omitempty"`
	Stats    dictionary.Stats `json:"stats" msgpack:"stats"`
	LoadedAt time.Time        `json:"loaded_at,omitempty" msgpack:"loaded_at,omitempty"`
	Cached   bool             `json:"cached" msgpack:"cached"`

	Completion map[dictionary.Direction]suggest.CompleterStats `json:"completion,omitempty" msgpack:"completion,omitempty"`
	RankCache  suggest.CacheStats                              `json:"rank_cache" msgpack:"rank_cache"`
}

type state struct {
	dict        *dictionary.Dictionary
	translator  *Translator
	completers  map[dictionary.Direction]*suggest.Completer
	ranks       *suggest.RankCache
	source      string
	languageKey string
	loadedAt    time.Time
	cached      bool
}

// Session owns the currently loaded dictionary and everything derived from it.
// It is safe for concurrent use; a load swaps the whole state at once.
type Session struct {
	// loadMu serializes loads. mu only guards the fields below and is never
	// held while a dataset is fetched or indexed.
	loadMu sync.Mutex
	mu     sync.RWMutex
	loader *dictionary.Loader
	cache  RecordCache
	opts   Options
	ranker *suggest.Ranker
	cur    *state

	// last requested source, kept even when the load failed so Reload can retry it
	lastSource      string
	lastLanguageKey string
}

// NewSession creates an empty session fetching datasets through loader.
func NewSession(loader *dictionary.Loader, opts Options) *Session {
	if opts.Translator.MaxCombinations <= 0 {
		opts.Translator.MaxCombinations = DefaultMaxCombinations
	}
	return &Session{
		loader: loader,
		opts:   opts,
		ranker: suggest.NewRanker(opts.MinScore),
	}
}

// SetCache enables the record cache.
func (s *Session) SetCache(cache RecordCache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = cache
}

// Load fetches source, builds its dictionary and makes it current.
// The previous dictionary keeps serving requests until the load finishes.
// On any failure it is discarded and translation stays disabled until a
// later load succeeds.
func (s *Session) Load(ctx context.Context, source, languageKey string) (Info, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	return s.load(ctx, source, languageKey)
}

// LoadRecords builds a dictionary from records already in memory.
func (s *Session) LoadRecords(records []dictionary.Record, source, languageKey string) (Info, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	s.lastSource, s.lastLanguageKey = source, languageKey
	s.mu.Unlock()

	next, err := s.build(records, source, languageKey, false)
	return s.swap(next, err)
}

// Reload repeats the last Load request.
func (s *Session) Reload(ctx context.Context) (Info, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	source, key := s.lastSource, s.lastLanguageKey
	s.mu.RUnlock()
	if source == "" {
		return Info{}, ErrNotLoaded
	}
	return s.load(ctx, source, key)
}

// ReloadSource reloads source if it is still the last requested one.
// The boolean is false when another source has been requested since.
func (s *Session) ReloadSource(ctx context.Context, source string) (Info, bool, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	current, key := s.lastSource, s.lastLanguageKey
	s.mu.RUnlock()
	if source == "" || current != source {
		return Info{}, false, nil
	}
	info, err := s.load(ctx, source, key)
	return info, true, err
}

// load must be called with loadMu held.
func (s *Session) load(ctx context.Context, source, languageKey string) (Info, error) {
	s.mu.Lock()
	s.lastSource, s.lastLanguageKey = source, languageKey
	reloading := s.cur != nil && s.cur.source == source
	cache := s.cache
	s.mu.Unlock()

	// a reload must see the file as it is now, never an older cached copy
	records, cached, err := s.fetch(ctx, source, cache, !reloading)
	var next *state
	if err == nil {
		next, err = s.build(records, source, languageKey, cached)
	}
	return s.swap(next, err)
}

// swap installs next as the current state, or clears it when err is set.
func (s *Session) swap(next *state, err error) (Info, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.cur = nil
		return Info{}, err
	}
	s.cur = next
	return s.infoLocked(), nil
}

// fetch reads source through the loader. The cache only stands in for a
// source that could not be reached; a source that was read but failed to
// decode is reported as is.
func (s *Session) fetch(ctx context.Context, source string, cache RecordCache, fallback bool) ([]dictionary.Record, bool, error) {
	records, err := s.loader.Fetch(ctx, source)
	if err == nil {
		if cache != nil {
			if cerr := cache.SaveRecords(source, records); cerr != nil {
				log.Warnf("Failed to cache %s: %v", source, cerr)
			}
		}
		return records, false, nil
	}

	var loadErr *dictionary.LoadError
	if cache == nil || !fallback || !errors.As(err, &loadErr) || !loadErr.Unreachable() {
		return nil, false, err
	}
	cachedRecords, ok, cerr := cache.Records(source)
	if cerr != nil {
		log.Warnf("Failed to read cache for %s: %v", source, cerr)
	}
	if !ok {
		return nil, false, err
	}
	log.Warnf("Using cached copy of %s: %v", source, err)
	return cachedRecords, true, nil
}

func (s *Session) build(records []dictionary.Record, source, languageKey string, cached bool) (*state, error) {
	dict, err := dictionary.Load(records, languageKey)
	if err != nil {
		return nil, err
	}
	log.Debugf("Session loaded %s (%s): %d entries", source, dict.Language, len(dict.Corpus))
	return &state{
		dict:       dict,
		translator: New(dict.Index, s.opts.Translator),
		completers: map[dictionary.Direction]*suggest.Completer{
			dictionary.SpanishToIndigenous: suggest.NewCompleter(dict.Index, dictionary.SpanishToIndigenous),
			dictionary.IndigenousToSpanish: suggest.NewCompleter(dict.Index, dictionary.IndigenousToSpanish),
		},
		ranks:       suggest.NewRankCache(rankCacheSize),
		source:      source,
		languageKey: languageKey,
		loadedAt:    time.Now(),
		cached:      cached,
	}, nil
}

// Clear drops the current dictionary.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
}

// Loaded reports whether translation is enabled.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur != nil
}

// Info returns a snapshot of the session state.
func (s *Session) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.infoLocked()
}

func (s *Session) infoLocked() Info {
	if s.cur == nil {
		return Info{}
	}
	return Info{
		Loaded:   true,
		Source:   s.cur.source,
		Language: s.cur.dict.Language,
		Stats:    s.cur.dict.Stats(),
		LoadedAt: s.cur.loadedAt,
		Cached:   s.cur.cached,

		Completion: map[dictionary.Direction]suggest.CompleterStats{
			dictionary.SpanishToIndigenous: s.cur.completers[dictionary.SpanishToIndigenous].Stats(),
			dictionary.IndigenousToSpanish: s.cur.completers[dictionary.IndigenousToSpanish].Stats(),
		},
		RankCache: s.cur.ranks.Stats(),
	}
}

// Dictionary returns the current dictionary, or nil.
func (s *Session) Dictionary() *dictionary.Dictionary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return nil
	}
	return s.cur.dict
}

func (s *Session) current(query string) (*state, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cur == nil {
		return nil, ErrNotLoaded
	}
	return s.cur, nil
}

// Translate ranks suggestions for query and translates it as a phrase.
func (s *Session) Translate(query string, dir dictionary.Direction) (Result, error) {
	st, err := s.current(query)
	if err != nil {
		return Result{}, err
	}
	phrase, listing := st.translator.Translate(query, dir)
	return Result{
		Query:       query,
		Direction:   dir,
		Suggestions: st.ranks.Rank(s.ranker, query, dir, st.dict.Corpus, s.opts.TopN),
		Phrase:      phrase,
		Listing:     listing,
		Speakable:   !listing && strings.TrimSpace(phrase) != "",
	}, nil
}

// Suggest returns the n best suggestions for query. n <= 0 uses the configured default.
func (s *Session) Suggest(query string, dir dictionary.Direction, n int) ([]suggest.Suggestion, error) {
	st, err := s.current(query)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = s.opts.TopN
	}
	return st.ranks.Rank(s.ranker, query, dir, st.dict.Corpus, n), nil
}

// Complete returns dictionary keys starting with prefix.
func (s *Session) Complete(prefix string, dir dictionary.Direction, limit int) ([]suggest.Completion, error) {
	st, err := s.current(prefix)
	if err != nil {
		return nil, err
	}
	c, ok := st.completers[dir]
	if !ok {
		c = st.completers[dictionary.SpanishToIndigenous]
	}
	return c.Complete(prefix, limit), nil
}

// Utterance builds the speech request for text. translated selects whether text
// is the translation of a query in direction dir or the query itself.
func (s *Session) Utterance(text string, dir dictionary.Direction, translated bool) (phonetic.Utterance, error) {
	st, err := s.current(text)
	if err != nil {
		return phonetic.Utterance{}, err
	}
	original, translation := phonetic.AudioLanguages(dir, st.dict.Language)
	lang := original
	if translated {
		lang = translation
	}
	return phonetic.NewUtterance(text, lang), nil
}
