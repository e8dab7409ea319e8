package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API routes. authMW guards everything below /api except login.
func NewRouter(h *Handler, authMW mux.MiddlewareFunc, global ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(global...)

	// Public routes
	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/logout", h.Logout).Methods(http.MethodPost)

	// Protected routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMW)
	api.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)
	api.HandleFunc("/laporan", h.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/reports", h.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/pembayaran", h.CreatePayment).Methods(http.MethodPost)
	api.HandleFunc("/pembayaran", h.ListPayments).Methods(http.MethodGet)
	api.HandleFunc("/pembayaran/{id}", h.GetPayment).Methods(http.MethodGet)
	api.HandleFunc("/pembayaran/{id}", h.UpdatePayment).Methods(http.MethodPut)
	api.HandleFunc("/pembayaran/{id}", h.DeletePayment).Methods(http.MethodDelete)

	api.HandleFunc("/kamar", h.CreateRoom).Methods(http.MethodPost)
	api.HandleFunc("/kamar", h.ListRooms).Methods(http.MethodGet)
	api.HandleFunc("/kamar/{id}", h.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/kamar/{id}", h.UpdateRoom).Methods(http.MethodPut)
	api.HandleFunc("/kamar/{id}", h.DeleteRoom).Methods(http.MethodDelete)

	api.HandleFunc("/penyewa", h.CreateTenant).Methods(http.MethodPost)
	api.HandleFunc("/penyewa", h.ListTenants).Methods(http.MethodGet)
	api.HandleFunc("/penyewa/{id}", h.GetTenant).Methods(http.MethodGet)
	api.HandleFunc("/penyewa/{id}", h.UpdateTenant).Methods(http.MethodPut)
	api.HandleFunc("/penyewa/{id}", h.DeleteTenant).Methods(http.MethodDelete)

	api.HandleFunc("/pengaduan", h.CreateComplaint).Methods(http.MethodPost)
	api.HandleFunc("/pengaduan", h.ListComplaints).Methods(http.MethodGet)
	api.HandleFunc("/pengaduan/{id}", h.GetComplaint).Methods(http.MethodGet)
	api.HandleFunc("/pengaduan/{id}", h.UpdateComplaint).Methods(http.MethodPut)
	api.HandleFunc("/pengaduan/{id}", h.DeleteComplaint).Methods(http.MethodDelete)

	return r
}
