// Package shared centralizes the JSON envelope both services speak:
// { "error": bool, "message": string, "data": { ... } }.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "credmint/pkg/domain-errors"
)

// Envelope is the wire shape of every response body.
type Envelope struct {
	Error   bool           `json:"error"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// WriteSuccess writes a non-error envelope with the given status.
func WriteSuccess(w http.ResponseWriter, status int, message string, data map[string]any) {
	write(w, status, Envelope{Error: false, Message: message, Data: data})
}

// WriteError translates a domain error into its HTTP status and envelope.
// Internal detail stays in logs; callers only see the coded message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.GetCode(err)
	write(w, dErrors.ToHTTPStatus(code), Envelope{Error: true, Message: dErrors.Message(err)})
}

func write(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
