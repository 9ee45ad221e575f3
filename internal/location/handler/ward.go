package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/location/models"
	"admingeo/internal/location/service"
	"admingeo/internal/transport/http/shared"
)

// WardHandler serves /ward.
type WardHandler struct {
	service *service.WardService
	auth    Middleware
}

func NewWardHandler(svc *service.WardService, auth Middleware) *WardHandler {
	return &WardHandler{service: svc, auth: auth}
}

func (h *WardHandler) Register(r chi.Router) {
	r.Route("/ward", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Get("/name/{name}", h.getByName)
		r.Get("/constituency/{id}", h.getByConstituencyID)
		r.Get("/constituency/name/{name}", h.getByConstituencyName)
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

func (h *WardHandler) list(w http.ResponseWriter, r *http.Request) {
	wards, err := h.service.GetWards(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	ward, err := h.service.GetWardByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ward)
}

func (h *WardHandler) getByName(w http.ResponseWriter, r *http.Request) {
	ward, err := h.service.GetWardByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ward)
}

func (h *WardHandler) getByConstituencyID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	wards, err := h.service.GetWardsByConstituencyID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByConstituencyName(w http.ResponseWriter, r *http.Request) {
	wards, err := h.service.GetWardsByConstituencyName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByDistrictID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	wards, err := h.service.GetWardsByDistrictID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByDistrictName(w http.ResponseWriter, r *http.Request) {
	wards, err := h.service.GetWardsByDistrictName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByProvinceID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	wards, err := h.service.GetWardsByProvinceID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) getByProvinceName(w http.ResponseWriter, r *http.Request) {
	wards, err := h.service.GetWardsByProvinceName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, wards)
}

func (h *WardHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.WardDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	ward, err := h.service.CreateWard(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, ward)
}

func (h *WardHandler) createBulk(w http.ResponseWriter, r *http.Request) {
	var dtos []models.WardDto
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
	inserted, err := h.service.CreateBulkWards(r.Context(), dtos)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, bulkResult{Inserted: inserted})
}

func (h *WardHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var upd models.WardUpdate
	if err := shared.DecodeJSON(r, &upd); err != nil {
		shared.WriteError(w, err)
		return
	}
	ward, err := h.service.UpdateWard(r.Context(), id, upd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ward)
}

func (h *WardHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteWard(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	writeDeleted(w)
}
