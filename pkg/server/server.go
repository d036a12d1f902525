package server

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/traductor/internal/logger"
	"github.com/bastiangx/traductor/pkg/config"
	"github.com/bastiangx/traductor/pkg/dictionary"
	"github.com/bastiangx/traductor/pkg/phonetic"
	"github.com/bastiangx/traductor/pkg/translate"
)

const statusOK = "ok"

// Handler runs requests against a session. Both transports share it.
type Handler struct {
	session *translate.Session
	cfg     *config.Config
	log     *log.Logger
}

// NewHandler creates a handler. A nil cfg uses the defaults.
func NewHandler(session *translate.Session, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Handler{session: session, cfg: cfg, log: logger.New("server")}
}

// Server handles msgpack IPC for a translation session.
type Server struct {
	*Handler
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
	writeMu sync.Mutex
}

// NewServer creates a server using stdin/stdout for IPC.
func NewServer(session *translate.Session, cfg *config.Config) *Server {
	return NewServerWithIO(session, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server reading requests from r and writing responses to w.
func NewServerWithIO(session *translate.Session, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		Handler: NewHandler(session, cfg),
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
	}
}

// Start signals readiness and serves requests until the input ends or ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting IPC server.")
	s.send(map[string]string{"status": "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				s.log.Debug("Input closed, stopping.")
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			s.log.Debugf("Invalid request frame: %v", err)
			s.send(ErrorResponse{Error: "Solicitud inválida.", Code: 400})
			continue
		}
		s.send(s.Handle(ctx, req))
	}
}

// Handle runs one request and returns the response to send, which is an
// ErrorResponse when the request failed.
func (h *Handler) Handle(ctx context.Context, req Request) any {
	if req.ID == "" {
		req.ID = ulid.Make().String()
	}
	start := time.Now()
	resp, err := h.dispatch(ctx, req, start)
	if err != nil {
		code := StatusFor(err)
		if code >= 500 {
			h.log.Errorf("Request %s (%s) failed: %v", req.ID, req.Action, err)
		} else {
			h.log.Debugf("Request %s (%s) rejected: %v", req.ID, req.Action, err)
		}
		return ErrorResponse{ID: req.ID, Error: errorMessage(err), Code: code}
	}
	return resp
}

func (h *Handler) dispatch(ctx context.Context, req Request, start time.Time) (any, error) {
	elapsed := func() int64 { return time.Since(start).Microseconds() }

	switch req.Action {
	case ActionTranslate:
		dir, err := h.direction(req.Direction)
		if err != nil {
			return nil, err
		}
		if err := h.checkLen(req.Query); err != nil {
			return nil, err
		}
		res, err := h.session.Translate(req.Query, dir)
		if err != nil {
			return nil, err
		}
		return TranslateResponse{
			ID:          req.ID,
			Status:      statusOK,
			Phrase:      res.Phrase,
			Listing:     res.Listing,
			Speakable:   res.Speakable,
			Suggestions: res.Suggestions,
			Count:       len(res.Suggestions),
			TimeTaken:   elapsed(),
		}, nil

	case ActionSuggest:
		dir, err := h.direction(req.Direction)
		if err != nil {
			return nil, err
		}
		if err := h.checkLen(req.Query); err != nil {
			return nil, err
		}
		sugs, err := h.session.Suggest(req.Query, dir, req.N)
		if err != nil {
			return nil, err
		}
		return SuggestResponse{ID: req.ID, Status: statusOK, Suggestions: sugs, Count: len(sugs), TimeTaken: elapsed()}, nil

	case ActionComplete:
		dir, err := h.direction(req.Direction)
		if err != nil {
			return nil, err
		}
		if err := h.checkLen(req.Prefix); err != nil {
			return nil, err
		}
		comps, err := h.session.Complete(req.Prefix, dir, h.completionLimit(req.Limit))
		if err != nil {
			return nil, err
		}
		return CompletionResponse{ID: req.ID, Status: statusOK, Completions: comps, Count: len(comps), TimeTaken: elapsed()}, nil

	case ActionSpeak:
		dir, err := h.direction(req.Direction)
		if err != nil {
			return nil, err
		}
		if err := h.checkLen(req.Query); err != nil {
			return nil, err
		}
		u, err := h.session.Utterance(req.Query, dir, req.Translated)
		if err != nil {
			return nil, err
		}
		resp := SpeakResponse{ID: req.ID, Status: statusOK, Utterance: u}
		if v, ok := phonetic.SelectVoice(req.Voices); ok {
			resp.Voice = &v
		}
		resp.TimeTaken = elapsed()
		return resp, nil

	case ActionLoad:
		source, err := h.catalogueSource(req.Language)
		if err != nil {
			return nil, err
		}
		info, err := h.session.Load(ctx, source, req.Key)
		if err != nil {
			return nil, err
		}
		h.log.Infof("Loaded %s: %d entries", info.Source, info.Stats.Entries)
		return InfoResponse{ID: req.ID, Status: statusOK, Info: info, TimeTaken: elapsed()}, nil

	case ActionInfo:
		return InfoResponse{ID: req.ID, Status: statusOK, Info: h.session.Info(), TimeTaken: elapsed()}, nil
	}
	return nil, badRequest("unknown action %q", req.Action)
}

// catalogueSource resolves a language name to its dataset file. Clients may
// only pick catalogue entries; the configured default is trusted as is.
func (h *Handler) catalogueSource(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if h.cfg.Dataset.DefaultLanguage == "" {
			return "", badRequest("missing language")
		}
		return h.cfg.DatasetSource(h.cfg.Dataset.DefaultLanguage), nil
	}
	l, ok := h.cfg.FindLanguage(name)
	if !ok {
		return "", badRequest("unknown language %q", name)
	}
	return l.File, nil
}

func (h *Handler) direction(name string) (dictionary.Direction, error) {
	if name == "" {
		name = h.cfg.CLI.DefaultDirection
	}
	dir, err := dictionary.ParseDirection(name)
	if err != nil {
		return "", badRequest("%v", err)
	}
	return dir, nil
}

func (h *Handler) checkLen(q string) error {
	if n := h.cfg.Server.MaxQueryLen; n > 0 && utf8.RuneCountInString(q) > n {
		return ErrQueryTooLong
	}
	return nil
}

func (h *Handler) completionLimit(limit int) int {
	ceiling := h.cfg.Server.MaxCompletions
	if limit <= 0 || (ceiling > 0 && limit > ceiling) {
		return ceiling
	}
	return limit
}

func (s *Server) send(resp any) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.enc.Encode(resp); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}
