package handler

import (
	"net/http"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/gorilla/mux"
)

// CreatePayment handles POST /api/pembayaran
func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePaymentInput
	if !decodeBody(w, r, &in) {
		return
	}

	p, err := h.payments.CreatePayment(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create pembayaran")
		return
	}
	response.Success(w, http.StatusCreated, "Pembayaran berhasil dibuat", p)
}

// ListPayments handles GET /api/pembayaran
func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q)
	f := models.PaymentFilter{
		Status:   q.Get("status"),
		TenantID: q.Get("penyewaId"),
		RoomID:   q.Get("kamarId"),
		Month:    q.Get("bulan"),
	}

	result, err := h.payments.ListPayments(r.Context(), f, page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch pembayaran")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", result)
}

// GetPayment handles GET /api/pembayaran/{id}
func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.payments.GetPayment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch pembayaran")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", p)
}

// UpdatePayment handles PUT /api/pembayaran/{id}
func (h *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var in service.UpdatePaymentInput
	if !decodeBody(w, r, &in) {
		return
	}

	p, err := h.payments.UpdatePayment(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update pembayaran")
		return
	}
	response.Success(w, http.StatusOK, "Pembayaran updated successfully", p)
}

// DeletePayment handles DELETE /api/pembayaran/{id}
func (h *Handler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	if err := h.payments.DeletePayment(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete pembayaran")
		return
	}
	response.Success(w, http.StatusOK, "Pembayaran deleted successfully", nil)
}
