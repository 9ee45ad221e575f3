// Package shared centralizes JSON encoding and domain error
// translation so every handler returns the same envelope.
package shared

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	dErrors "admingeo/pkg/domain-errors"
)

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a domain error onto the standard envelope. Uncoded
// errors surface as 500 with a generic message; the cause never
// reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	WriteJSON(w, dErrors.ToHTTPStatus(code), errorEnvelope{
		Error:   string(code),
		Message: dErrors.MessageOf(err),
	})
}

// DecodeJSON decodes a request body, returning a coded error for the
// handler to pass straight to WriteError. Unknown fields are dropped,
// matching the declared-fields-only request policy.
func DecodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}

// IDParam parses a numeric chi route parameter.
func IDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "invalid %s parameter", name)
	}
	return id, nil
}
