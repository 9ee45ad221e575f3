package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/location/models"
	"admingeo/internal/location/service"
	"admingeo/internal/transport/http/shared"
)

// DistrictHandler serves /district.
type DistrictHandler struct {
	service *service.DistrictService
	auth    Middleware
}

func NewDistrictHandler(svc *service.DistrictService, auth Middleware) *DistrictHandler {
	return &DistrictHandler{service: svc, auth: auth}
}

func (h *DistrictHandler) Register(r chi.Router) {
	r.Route("/district", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Get("/name/{name}", h.getByName)
		r.Get("/province/{id}", h.getByProvinceID)
		r.Get("/province/name/{name}", h.getByProvinceName)
		r.Get("/province/query/{id}/{name}", h.getByProvinceIDAndName)
		mountGuarded(r, h.auth, func(r chi.Router) {
			r.Post("/", h.create)
			r.Post("/bulk", h.createBulk)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *DistrictHandler) list(w http.ResponseWriter, r *http.Request) {
	districts, err := h.service.GetDistricts(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, districts)
}

func (h *DistrictHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	district, err := h.service.GetDistrictByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, district)
}

func (h *DistrictHandler) getByName(w http.ResponseWriter, r *http.Request) {
	district, err := h.service.GetDistrictByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, district)
}

func (h *DistrictHandler) getByProvinceID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	districts, err := h.service.GetDistrictsByProvinceID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, districts)
}

func (h *DistrictHandler) getByProvinceName(w http.ResponseWriter, r *http.Request) {
	districts, err := h.service.GetDistrictsByProvinceName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, districts)
}

func (h *DistrictHandler) getByProvinceIDAndName(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	districts, err := h.service.GetDistrictsByProvinceIDAndName(r.Context(), id, chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, districts)
}

func (h *DistrictHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.DistrictDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	district, err := h.service.CreateDistrict(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, district)
}

func (h *DistrictHandler) createBulk(w http.ResponseWriter, r *http.Request) {
	var dtos []models.DistrictDto
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
	inserted, err := h.service.CreateBulkDistricts(r.Context(), dtos)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, bulkResult{Inserted: inserted})
}

func (h *DistrictHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var upd models.DistrictUpdate
	if err := shared.DecodeJSON(r, &upd); err != nil {
		shared.WriteError(w, err)
		return
	}
	district, err := h.service.UpdateDistrict(r.Context(), id, upd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, district)
}

func (h *DistrictHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteDistrict(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	writeDeleted(w)
}
