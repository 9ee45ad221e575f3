package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"admingeo/internal/location/models"
	"admingeo/internal/location/service"
	"admingeo/internal/transport/http/shared"
)

// ProvinceHandler serves /province.
type ProvinceHandler struct {
	service *service.ProvinceService
	auth    Middleware
}

func NewProvinceHandler(svc *service.ProvinceService, auth Middleware) *ProvinceHandler {
	return &ProvinceHandler{service: svc, auth: auth}
}

func (h *ProvinceHandler) Register(r chi.Router) {
	r.Route("/province", func(r chi.Router) {
		r.Get("/", h.list)
		r.Get("/{id}", h.getByID)
		r.Get("/name/{name}", h.getByName)
		r.Get("/district/{name}", h.getByDistrictName)
		r.Get("/constituency/{name}", h.getByConstituencyName)
		r.Get("/ward/{name}", h.getByWardName)
		mountGuarded(r, h.auth, func(r chi.Router) {
			r.Post("/", h.create)
			r.Post("/bulk", h.createBulk)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})
	})
}

func (h *ProvinceHandler) list(w http.ResponseWriter, r *http.Request) {
	provinces, err := h.service.GetProvinces(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, provinces)
}

func (h *ProvinceHandler) getByID(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	province, err := h.service.GetProvinceByID(r.Context(), id)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) getByName(w http.ResponseWriter, r *http.Request) {
	province, err := h.service.GetProvinceByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) getByDistrictName(w http.ResponseWriter, r *http.Request) {
	province, err := h.service.GetProvinceByDistrictName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) getByConstituencyName(w http.ResponseWriter, r *http.Request) {
	province, err := h.service.GetProvinceByConstituencyName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) getByWardName(w http.ResponseWriter, r *http.Request) {
	province, err := h.service.GetProvinceByWardName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) create(w http.ResponseWriter, r *http.Request) {
	var dto models.ProvinceDto
	if err := shared.DecodeJSON(r, &dto); err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := dto.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}
	province, err := h.service.CreateProvince(r.Context(), dto)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, province)
}

func (h *ProvinceHandler) createBulk(w http.ResponseWriter, r *http.Request) {
	var dtos []models.ProvinceDto
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
	inserted, err := h.service.CreateBulkProvinces(r.Context(), dtos)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, bulkResult{Inserted: inserted})
}

func (h *ProvinceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	var upd models.ProvinceUpdate
	if err := shared.DecodeJSON(r, &upd); err != nil {
		shared.WriteError(w, err)
		return
	}
	province, err := h.service.UpdateProvince(r.Context(), id, upd)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, province)
}

func (h *ProvinceHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := shared.IDParam(r, "id")
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	if err := h.service.DeleteProvince(r.Context(), id); err != nil {
		shared.WriteError(w, err)
		return
	}
	writeDeleted(w)
}
