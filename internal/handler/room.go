package handler

import (
	"net/http"
	"strconv"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/response"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/gorilla/mux"
)

// CreateRoom handles POST /api/kamar
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var in service.CreateRoomInput
	if !decodeBody(w, r, &in) {
		return
	}

	room, err := h.rooms.CreateRoom(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to create kamar")
		return
	}
	response.Success(w, http.StatusCreated, "Kamar created successfully", room)
}

// ListRooms handles GET /api/kamar
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit := pageParams(q)
	f := models.RoomFilter{Status: q.Get("status"), Type: q.Get("tipe")}
	if raw := q.Get("lantai"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid lantai", err.Error())
			return
		}
		f.Floor = floor
	}

	result, err := h.rooms.ListRooms(r.Context(), f, page, limit)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch kamar")
		return
	}
	response.Success(w, http.StatusOK, "Data retrieved successfully", result)
}

// GetRoom handles GET /api/kamar/{id}
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.rooms.GetRoom(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to fetch kamar")
		return
	}
	response.Success(w, http.StatusOK, "Kamar retrieved successfully", room)
}

// UpdateRoom handles PUT /api/kamar/{id}
func (h *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateRoomInput
	if !decodeBody(w, r, &in) {
		return
	}

	room, err := h.rooms.UpdateRoom(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		h.writeServiceError(w, r, err, "Failed to update kamar")
		return
	}
	response.Success(w, http.StatusOK, "Kamar updated successfully", room)
}

// DeleteRoom handles DELETE /api/kamar/{id}
func (h *Handler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	if err := h.rooms.DeleteRoom(r.Context(), mux.Vars(r)["id"]); err != nil {
		h.writeServiceError(w, r, err, "Failed to delete kamar")
		return
	}
	response.Success(w, http.StatusOK, "Kamar deleted successfully", nil)
}
