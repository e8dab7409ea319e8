package handler

import (
	"net/http"
	"testing"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRoom(t *testing.T) {
	s := newTestServer(t)
	s.rooms.On("CreateRoom", mock.Anything, mock.MatchedBy(func(in service.CreateRoomInput) bool {
		return in.Number == "A-101" && in.Floor == 1 && in.Type == models.RoomPremium &&
			in.MonthlyPrice.Equal(decimal.NewFromInt(2000000)) && len(in.Facilities) == 2
	})).Return(&models.Room{ID: "r-1", Number: "A-101", Facilities: []string{"AC", "WiFi"}}, nil)

	body := `{"nomorKamar":"A-101","lantai":1,"tipe":"PREMIUM","hargaPerBulan":2000000,"fasilitas":["AC","WiFi"]}`
	rec := s.do(http.MethodPost, "/api/kamar", body, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "Kamar created successfully", env["message"])
	assert.Equal(t, "A-101", env["data"].(map[string]any)["nomorKamar"])
}

func TestCreateRoom_DuplicateNumber(t *testing.T) {
	s := newTestServer(t)
	s.rooms.On("CreateRoom", mock.Anything, mock.Anything).Return(nil, repository.ErrConflict)

	rec := s.do(http.MethodPost, "/api/kamar", `{"nomorKamar":"A-101"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListRooms(t *testing.T) {
	s := newTestServer(t)
	page := &models.Page[models.Room]{
		Items:      []models.Room{{ID: "r-1"}},
		Pagination: models.Pagination{Page: 1, Limit: 10, Total: 1, TotalPages: 1},
	}
	s.rooms.On("ListRooms", mock.Anything,
		models.RoomFilter{Status: models.RoomAvailable, Type: models.RoomVIP, Floor: 2}, 0, 0).
		Return(page, nil)

	rec := s.do(http.MethodGet, "/api/kamar?status=TERSEDIA&tipe=VIP&lantai=2", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeEnvelope(t, rec)["data"].(map[string]any)["items"].([]any)
	assert.Len(t, items, 1)
}

func TestListRooms_BadFloor(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/kamar?lantai=dua", "", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.rooms.AssertNotCalled(t, "ListRooms", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetRoom_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.rooms.On("GetRoom", mock.Anything, "missing").Return(nil, repository.ErrNotFound)

	rec := s.do(http.MethodGet, "/api/kamar/missing", "", true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateRoom(t *testing.T) {
	s := newTestServer(t)
	s.rooms.On("UpdateRoom", mock.Anything, "r-1", mock.MatchedBy(func(in service.UpdateRoomInput) bool {
		return in.Status != nil && *in.Status == models.RoomMaintenance && in.Number == nil
	})).Return(&models.Room{ID: "r-1", Status: models.RoomMaintenance}, nil)

	rec := s.do(http.MethodPut, "/api/kamar/r-1", `{"status":"MAINTENANCE"}`, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Kamar updated successfully", decodeEnvelope(t, rec)["message"])
}

func TestDeleteRoom_InUse(t *testing.T) {
	s := newTestServer(t)
	s.rooms.On("DeleteRoom", mock.Anything, "r-1").Return(repository.ErrConflict)

	rec := s.do(http.MethodDelete, "/api/kamar/r-1", "", true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRoomRoutes_RequireAuth(t *testing.T) {
	s := newTestServer(t)
	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := s.do(method, "/api/kamar/r-1", "", false)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}
