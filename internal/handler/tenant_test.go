package handler

import (
	"net/http"
	"testing"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/Dan9191/kos-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateTenant(t *testing.T) {
	s := newTestServer(t)
	s.tenants.On("CreateTenant", mock.Anything, service.CreateTenantInput{
		Name: "Siti", Email: "siti@example.com", Phone: "0813", HomeAddress: "Bandung",
		BirthDate: "2000-05-01", RoomID: "r-1",
	}).Return(&models.Tenant{ID: "t-1", Name: "Siti"}, nil)

	body := `{"nama":"Siti","email":"siti@example.com","noHp":"0813","alamatAsal":"Bandung",` +
		`"tanggalLahir":"2000-05-01","kamarId":"r-1"}`
	rec := s.do(http.MethodPost, "/api/penyewa", body, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Penyewa created successfully", decodeEnvelope(t, rec)["message"])
}

func TestCreateTenant_EmailTaken(t *testing.T) {
	s := newTestServer(t)
	s.tenants.On("CreateTenant", mock.Anything, mock.Anything).Return(nil, repository.ErrConflict)

	rec := s.do(http.MethodPost, "/api/penyewa", `{"email":"siti@example.com"}`, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListTenants(t *testing.T) {
	s := newTestServer(t)
	s.tenants.On("ListTenants", mock.Anything,
		models.TenantFilter{Search: "siti", Status: models.TenantActive}, 3, 20).
		Return(&models.Page[models.Tenant]{Items: []models.Tenant{}}, nil)

	rec := s.do(http.MethodGet, "/api/penyewa?search=siti&status=AKTIF&page=3&limit=20", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	s.tenants.AssertExpectations(t)
}

func TestGetTenant(t *testing.T) {
	s := newTestServer(t)
	room := "r-1"
	s.tenants.On("GetTenant", mock.Anything, "t-1").Return(&models.Tenant{
		ID: "t-1", RoomID: &room, Room: &models.RoomSummary{ID: "r-1", Number: "A-101"},
	}, nil)

	rec := s.do(http.MethodGet, "/api/penyewa/t-1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "r-1", data["kamarId"])
	assert.Equal(t, "A-101", data["kamar"].(map[string]any)["nomorKamar"])
}

func TestUpdateTenant_Validation(t *testing.T) {
	s := newTestServer(t)
	s.tenants.On("UpdateTenant", mock.Anything, "t-1", mock.Anything).
		Return(nil, &service.ValidationError{Fields: map[string][]string{"status": {"status must be one of AKTIF, KELUAR, SUSPEND"}}})

	rec := s.do(http.MethodPut, "/api/penyewa/t-1", `{"status":"PINDAH"}`, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec)["errors"], "status")
}

func TestDeleteTenant(t *testing.T) {
	s := newTestServer(t)
	s.tenants.On("DeleteTenant", mock.Anything, "t-1").Return(nil)

	rec := s.do(http.MethodDelete, "/api/penyewa/t-1", "", true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Penyewa deleted successfully", decodeEnvelope(t, rec)["message"])
}
