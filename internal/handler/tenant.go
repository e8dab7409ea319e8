package handler

import (
	"net/http"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/gorilla/mux"
)

// CreateTenant handles POST /api/penyewa
func (h *Handler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTenantInput
	if !decodeBody(w, r, &in) {
		return
	}

	t, err := h.tenants.CreateTenant(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create penyewa")
		return
	}
	response.Success(w, http.StatusCreated, "Penyewa created successfully", t)
}

// ListTenants handles GET /api/penyewa
func (h *Handler) ListTenants(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q)
	f := models.TenantFilter{Search: q.Get("search"), Status: q.Get("status")}

	result, err := h.tenants.ListTenants(r.Context(), f, page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch penyewa")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", result)
}

// GetTenant handles GET /api/penyewa/{id}
func (h *Handler) GetTenant(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.GetTenant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch penyewa")
		return
	}
	response.Success(w, http.StatusOK, "Penyewa retrieved successfully", t)
}

// UpdateTenant handles PUT /api/penyewa/{id}
func (h *Handler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateTenantInput
	if !decodeBody(w, r, &in) {
		return
	}

	t, err := h.tenants.UpdateTenant(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update penyewa")
		return
	}
	response.Success(w, http.StatusOK, "Penyewa updated successfully", t)
}

// DeleteTenant handles DELETE /api/penyewa/{id}
func (h *Handler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := h.tenants.DeleteTenant(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete penyewa")
		return
	}
	response.Success(w, http.StatusOK, "Penyewa deleted successfully", nil)
}
