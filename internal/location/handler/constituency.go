package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/location/models"
	"admingeo/internal/location/service"
	"admingeo/internal/transport/http/shared"
)

// ConstituencyHandler serves /constituency.
type ConstituencyHandler struct {
	service *service.ConstituencyService
	auth    Middleware
}

func NewConstituencyHandler(svc *service.ConstituencyService, auth Middleware) *ConstituencyHandler {
	return &ConstituencyHandler{service: svc, auth: auth}
}

func (h *ConstituencyHandler) Register(r chi.Router) {
	r.Route("/constituency", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Get("/name/{name}", h.getByName)
		r.Get("/district/{id}", h.getByDistrictID)
		r.Get("/district/name/{name}", h.getByDistrictName)
		r.Get("/province/{id}", h.getByProvinceID)
		r.Get("/province/name/{name}", h.getByProvinceName)
		mountGuarded(r, h.auth, func(r chi.Router) {
			r.Post("/", h.create)
			r.Post("/bulk", h.createBulk)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *ConstituencyHandler) list(w http.ResponseWriter, r *http.Request) {
	constituencies, err := h.service.GetConstituencies(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituencies)
}

func (h *ConstituencyHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	constituency, err := h.service.GetConstituencyByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituency)
}

func (h *ConstituencyHandler) getByName(w http.ResponseWriter, r *http.Request) {
	constituency, err := h.service.GetConstituencyByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituency)
}

func (h *ConstituencyHandler) getByDistrictID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	constituencies, err := h.service.GetConstituenciesByDistrictID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituencies)
}

func (h *ConstituencyHandler) getByDistrictName(w http.ResponseWriter, r *http.Request) {
	constituencies, err := h.service.GetConstituenciesByDistrictName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituencies)
}

func (h *ConstituencyHandler) getByProvinceID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	constituencies, err := h.service.GetConstituenciesByProvinceID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituencies)
}

func (h *ConstituencyHandler) getByProvinceName(w http.ResponseWriter, r *http.Request) {
	constituencies, err := h.service.GetConstituenciesByProvinceName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituencies)
}

func (h *ConstituencyHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.ConstituencyDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	constituency, err := h.service.CreateConstituency(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, constituency)
}

func (h *ConstituencyHandler) createBulk(w http.ResponseWriter, r *http.Request) {
	var dtos []models.ConstituencyDto
	if err := shared.DecodeJSON(r, &dtos); err != nil {
		shared.WriteError(w, err)
		return
	}
	for _, dto := range dtos {
		if err := dto.Validate(); err != nil {
			shared.WriteError(w, err)
			return
		}
	}
	inserted, err := h.service.CreateBulkConstituencies(r.Context(), dtos)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, bulkResult{Inserted: inserted})
}

func (h *ConstituencyHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var upd models.ConstituencyUpdate
	if err := shared.DecodeJSON(r, &upd); err != nil {
		shared.WriteError(w, err)
		return
	}
	constituency, err := h.service.UpdateConstituency(r.Context(), id, upd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, constituency)
}

func (h *ConstituencyHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteConstituency(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	writeDeleted(w)
}
