/*
Package server exposes a translation Session over msgpack IPC and over HTTP.

# IPC

Clients write msgpack maps to stdin, one after another, and read one msgpack map
per request from stdout. Every request names an action; the id is echoed back
and a ULID is assigned when it is missing.

	{"id": "r1", "action": "translate", "q": "Perro", "dir": "es"}
	{"id": "r1", "status": "ok", "p": "Chichi", "l": false, "a": true, "s": [...], "c": 1, "t": 85}

	{"id": "r2", "action": "suggest", "q": "perros", "n": 3}
	{"id": "r3", "action": "complete", "p": "pe", "l": 10}
	{"id": "r4", "action": "speak", "q": "chichi", "dir": "es", "tr": true, "voices": [{"name": "Mónica", "lang": "es-ES"}]}
	{"id": "r5", "action": "load", "lang": "nahuatl"}

Load only accepts names from the configured language catalogue.

	{"id": "r6", "action": "info"}

Failures answer with an error map instead:

	{"id": "r7", "e": "Selecciona un diccionario primero.", "c": 409}

Codes follow HTTP semantics: 400 for bad queries, 409 when no dictionary is
loaded, 422 for datasets without a usable schema and 502 when a dataset could
not be fetched. "t" is the handling time in microseconds.

# HTTP

The same operations are served as JSON under /v1 (see NewRouter).
*/
package server

import (
	"github.com/bastiangx/traductor/pkg/phonetic"
	"github.com/bastiangx/traductor/pkg/suggest"
	"github.com/bastiangx/traductor/pkg/translate"
)

// Actions understood by the IPC server.
const (
	ActionTranslate = "translate"
	ActionSuggest   = "suggest"
	ActionComplete  = "complete"
	ActionSpeak     = "speak"
	ActionLoad      = "load"
	ActionInfo      = "info"
)

// Request is the union of every IPC request shape.
type Request struct {
	ID         string `msgpack:"id" json:"id,omitempty"`
	Action     string `msgpack:"action" json:"action,omitempty"`
	Query      string `msgpack:"q,omitempty" json:"q,omitempty"`
	Direction  string `msgpack:"dir,omitempty" json:"dir,omitempty"`
	N          int    `msgpack:"n,omitempty" json:"n,omitempty"`
	Prefix     string `msgpack:"p,omitempty" json:"p,omitempty"`
	Limit      int    `msgpack:"l,omitempty" json:"l,omitempty"`
	Language   string `msgpack:"lang,omitempty" json:"lang,omitempty"`
	Key        string `msgpack:"key,omitempty" json:"key,omitempty"`
	Translated bool   `msgpack:"tr,omitempty" json:"tr,omitempty"`
	// Voices lists the voices the client can play; speak picks one of them.
	Voices []phonetic.Voice `msgpack:"voices,omitempty" json:"voices,omitempty"`
}

// TranslateResponse answers a translate action.
type TranslateResponse struct {
	ID          string               `msgpack:"id" json:"id"`
	Status      string               `msgpack:"status" json:"status"`
	Phrase      string               `msgpack:"p" json:"traduccion"`
	Listing     bool                 `msgpack:"l" json:"listado"`
	Speakable   bool                 `msgpack:"a" json:"audio"`
	Suggestions []suggest.Suggestion `msgpack:"s" json:"sugerencias"`
	Count       int                  `msgpack:"c" json:"count"`
	TimeTaken   int64                `msgpack:"t" json:"t"`
}

// SuggestResponse answers a suggest action.
type SuggestResponse struct {
	ID          string               `msgpack:"id" json:"id"`
	Status      string               `msgpack:"status" json:"status"`
	Suggestions []suggest.Suggestion `msgpack:"s" json:"sugerencias"`
	Count       int                  `msgpack:"c" json:"count"`
	TimeTaken   int64                `msgpack:"t" json:"t"`
}

// CompletionResponse answers a complete action.
type CompletionResponse struct {
	ID          string               `msgpack:"id" json:"id"`
	Status      string               `msgpack:"status" json:"status"`
	Completions []suggest.Completion `msgpack:"s" json:"completions"`
	Count       int                  `msgpack:"c" json:"count"`
	TimeTaken   int64                `msgpack:"t" json:"t"`
}

// SpeakResponse answers a speak action.
type SpeakResponse struct {
	ID        string             `msgpack:"id" json:"id"`
	Status    string             `msgpack:"status" json:"status"`
	Utterance phonetic.Utterance `msgpack:"u" json:"utterance"`
	// Voice is the Spanish voice chosen from the request's voices, if any.
	Voice     *phonetic.Voice `msgpack:"v,omitempty" json:"voice,omitempty"`
	TimeTaken int64           `msgpack:"t" json:"t"`
}

// InfoResponse answers load and info actions.
type InfoResponse struct {
	ID        string         `msgpack:"id" json:"id"`
	Status    string         `msgpack:"status" json:"status"`
	Info      translate.Info `msgpack:"info" json:"info"`
	TimeTaken int64          `msgpack:"t" json:"t"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id" json:"id"`
	Error string `msgpack:"e" json:"error"`
	Code  int    `msgpack:"c" json:"status"`
}
