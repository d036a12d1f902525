package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestHTTPHealthz(t *testing.T) {
	router := NewRouter(newTestHandler(t))
	rec := do(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Len(t, rec.Header().Get(middleware.RequestIDHeader), 26)
}

func TestHTTPTranslateFlow(t *testing.T) {
	router := NewRouter(newTestHandler(t))

	rec := do(t, router, http.MethodPost, "/v1/translate", `{"q": "perro"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Selecciona un diccionario primero.", body["error"])
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), body["id"])

	rec = do(t, router, http.MethodPost, "/v1/load", `{"lang": "nahuatl"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	info := decodeBody(t, rec)["info"].(map[string]any)
	assert.Equal(t, true, info["loaded"])

	rec = do(t, router, http.MethodPost, "/v1/translate", `{"q": "Perro", "dir": "es"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body = decodeBody(t, rec)
	assert.Equal(t, "Chichi", body["traduccion"])
	assert.Equal(t, false, body["listado"])
	assert.Equal(t, true, body["audio"])
	sugs := body["sugerencias"].([]any)
	require.NotEmpty(t, sugs)
	first := sugs[0].(map[string]any)
	assert.Equal(t, "chichi", first["traduccion"])
	assert.Equal(t, "Alta", first["confianza"])

	rec = do(t, router, http.MethodGet, "/v1/complete?p=pe&l=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	comps := decodeBody(t, rec)["completions"].([]any)
	require.Len(t, comps, 2)
	assert.Equal(t, map[string]any{"k": "perro", "t": "chichi"}, comps[0])

	rec = do(t, router, http.MethodPost, "/v1/speak", `{"q": "chichi", "tr": true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	utt := decodeBody(t, rec)["utterance"].(map[string]any)
	assert.Equal(t, "khikhi", utt["text"])

	rec = do(t, router, http.MethodGet, "/v1/info", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nahuatl.JSON", decodeBody(t, rec)["info"].(map[string]any)["source"])
}

func TestHTTPErrors(t *testing.T) {
	router := NewRouter(newTestHandler(t))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"bad json", http.MethodPost, "/v1/translate", `{"q":`, http.StatusBadRequest},
		{"bad limit", http.MethodGet, "/v1/complete?p=pe&l=many", "", http.StatusBadRequest},
		{"bad schema", http.MethodPost, "/v1/load", `{"lang": "nahuatl", "key": "maya"}`, http.StatusUnprocessableEntity},
		{"unknown language", http.MethodPost, "/v1/load", `{"lang": "nope.json"}`, http.StatusBadRequest},
		{"missing dataset", http.MethodPost, "/v1/load", `{"lang": "maya"}`, http.StatusBadGateway},
		{"wrong method", http.MethodGet, "/v1/translate", "", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestHTTPLoadOnlyFromCatalogue(t *testing.T) {
	h := newTestHandler(t)
	router := NewRouter(h)

	secret := filepath.Join(t.TempDir(), "secret.csv")
	require.NoError(t, os.WriteFile(secret, []byte("espanol,nahuatl\nclave,tlatlatilli\n"), 0o644))
	rel, err := filepath.Rel(h.cfg.Dataset.Dir, secret)
	require.NoError(t, err)

	for _, lang := range []string{secret, rel, "nahuatl.JSON"} {
		body, err := json.Marshal(map[string]string{"lang": lang})
		require.NoError(t, err)
		rec := do(t, router, http.MethodPost, "/v1/load", string(body))
		assert.Equal(t, http.StatusBadRequest, rec.Code, lang)
	}

	rec := do(t, router, http.MethodPost, "/v1/translate", `{"q": "clave"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, h.session.Loaded())
}

func TestHTTPKeepsRequestID(t *testing.T) {
	router := NewRouter(newTestHandler(t))
	req := httptest.NewRequest(http.MethodGet, "/v1/info", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-42")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "client-42", rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "client-42", decodeBody(t, rec)["id"])
}
