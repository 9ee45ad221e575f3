// Package handler exposes user account management over HTTP.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/transport/http/shared"
	"admingeo/internal/user/models"
	"admingeo/internal/user/service"
)

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

func (h *Handler) Register(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.GetUsers(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.UserDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	user, err := h.service.CreateUser(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var upd models.UserUpdate
	if err := shared.DecodeJSON(r, &upd); err != nil {
		shared.WriteError(w, err)
		return
	}
	user, err := h.service.UpdateUser(r.Context(), id, upd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, true)
}
