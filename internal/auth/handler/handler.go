// Package handler exposes login and current-session lookup over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/auth/service"
	"admingeo/internal/platform/middleware"
	"admingeo/internal/transport/http/shared"
	"admingeo/internal/user/models"
)

type Handler struct {
	service *service.Service
	auth    func(http.Handler) http.Handler
}

func NewHandler(svc *service.Service, auth func(http.Handler) http.Handler) *Handler {
	return &Handler{service: svc, auth: auth}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/current", h.current)
		})
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var dto models.LoginDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	result, err := h.service.Login(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}
