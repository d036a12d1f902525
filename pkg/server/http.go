package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"
)

const (
	maxBodyBytes   = 64 << 10
	requestTimeout = 30 * time.Second
)

// NewRouter serves the handler's operations as a JSON API:
//
//	GET  /healthz
//	GET  /v1/info
//	POST /v1/translate  {"q": "Perro", "dir": "es"}
//	POST /v1/suggest    {"q": "perros", "n": 3}
//	GET  /v1/complete?p=pe&dir=es&l=10
//	POST /v1/speak      {"q": "chichi", "dir": "es", "tr": true}
//	POST /v1/load       {"lang": "nahuatl"}
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/info", h.serveAction(ActionInfo))
		r.Post("/translate", h.serveAction(ActionTranslate))
		r.Post("/suggest", h.serveAction(ActionSuggest))
		r.Get("/complete", h.serveAction(ActionComplete))
		r.Post("/speak", h.serveAction(ActionSpeak))
		r.Post("/load", h.serveAction(ActionLoad))
	})
	return r
}

// NewHTTPServer wraps the router in an http.Server listening on addr.
func NewHTTPServer(addr string, h *Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      requestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// requestID keeps an incoming X-Request-Id or assigns a ULID, and exposes it
// through middleware.GetReqID.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(middleware.RequestIDHeader))
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debug("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *Handler) serveAction(action string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRequest(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{
				ID:    middleware.GetReqID(r.Context()),
				Error: "Solicitud inválida.",
				Code:  http.StatusBadRequest,
			})
			return
		}
		req.Action = action
		if req.ID == "" {
			req.ID = middleware.GetReqID(r.Context())
		}

		resp := h.Handle(r.Context(), req)
		status := http.StatusOK
		if e, ok := resp.(ErrorResponse); ok {
			status = e.Code
		}
		writeJSON(w, status, resp)
	}
}

// decodeRequest reads the JSON body of POST requests and the query string of GET requests.
func decodeRequest(r *http.Request) (Request, error) {
	var req Request
	if r.Method != http.MethodGet {
		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
		if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
		return req, nil
	}

	q := r.URL.Query()
	req.ID = q.Get("id")
	req.Query = q.Get("q")
	req.Prefix = q.Get("p")
	req.Direction = q.Get("dir")
	req.Language = q.Get("lang")
	for key, dst := range map[string]*int{"n": &req.N, "l": &req.Limit} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, errors.New("invalid " + key)
		}
		*dst = n
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
