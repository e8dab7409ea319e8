package handler

import (
	"net/http"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/gorilla/mux"
)

// CreateComplaint handles POST /api/pengaduan
func (h *Handler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	var in service.CreateComplaintInput
	if !decodeBody(w, r, &in) {
		return
	}

	c, err := h.complaints.CreateComplaint(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create pengaduan")
		return
	}
	response.Success(w, http.StatusCreated, "Pengaduan created successfully", c)
}

// ListComplaints handles GET /api/pengaduan
func (h *Handler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q)
	f := models.ComplaintFilter{
		Status:   q.Get("status"),
		TenantID: q.Get("penyewaId"),
		Category: q.Get("kategori"),
		Priority: q.Get("prioritas"),
	}

	result, err := h.complaints.ListComplaints(r.Context(), f, page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch pengaduan")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", result)
}

// GetComplaint handles GET /api/pengaduan/{id}
func (h *Handler) GetComplaint(w http.ResponseWriter, r *http.Request) {
	c, err := h.complaints.GetComplaint(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch pengaduan")
		return
	}
	response.Success(w, http.StatusOK, "Pengaduan berhasil dimuat", c)
}

// UpdateComplaint handles PUT /api/pengaduan/{id}
func (h *Handler) UpdateComplaint(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateComplaintInput
	if !decodeBody(w, r, &in) {
		return
	}

	c, err := h.complaints.UpdateComplaint(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update pengaduan")
		return
	}
	response.Success(w, http.StatusOK, "Pengaduan berhasil diupdate", c)
}

// DeleteComplaint handles DELETE /api/pengaduan/{id}
func (h *Handler) DeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if err := h.complaints.DeleteComplaint(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete pengaduan")
		return
	}
	response.Success(w, http.StatusOK, "Pengaduan berhasil dihapus", nil)
}
