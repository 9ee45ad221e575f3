// Package handler is the thin HTTP layer over the location services.
// Handlers decode and validate payloads, delegate, and translate
// domain errors to statuses; no business logic lives here.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/transport/http/shared"
)

// Middleware is a chi-compatible wrapper applied to mutation routes.
type Middleware func(http.Handler) http.Handler

// bulkResult is the response body for batch inserts.
type bulkResult struct {
	Inserted int64 `json:"inserted"`
}

// mountGuarded registers the write routes behind the auth middleware.
// All four location resources guard mutations uniformly.
func mountGuarded(r chi.Router, auth Middleware, register func(chi.Router)) {
	r.Group(func(r chi.Router) {
		r.Use(auth)
		register(r)
	})
}

func writeDeleted(w http.ResponseWriter) {
	shared.WriteJSON(w, http.StatusOK, true)
}
