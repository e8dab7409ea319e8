package service

import (
	"context"
	"testing"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockComplaintRepo struct {
	mock.Mock
}

func (m *mockComplaintRepo) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockComplaintRepo) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Complaint), args.Get(1).(int64), args.Error(2)
}

func (m *mockComplaintRepo) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *mockComplaintRepo) DeleteComplaint(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCreateComplaint_Defaults(t *testing.T) {
	complaints := new(mockComplaintRepo)
	complaints.On("CreateComplaint", mock.Anything, mock.MatchedBy(func(c *models.Complaint) bool {
		return c.Priority == models.PriorityMedium && c.Status == models.ComplaintNew && c.Category == "AIR"
	})).Return(nil)
	s := newServiceWith(Repositories{Complaints: complaints})

	c, err := s.CreateComplaint(context.Background(), CreateComplaintInput{
		TenantID: "t-1", Title: "Air mati", Description: "Tidak ada air sejak pagi", Category: "AIR",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintNew, c.Status)
	complaints.AssertExpectations(t)
}

func TestCreateComplaint_Validation(t *testing.T) {
	s := newServiceWith(Repositories{Complaints: new(mockComplaintRepo)})

	_, err := s.CreateComplaint(context.Background(), CreateComplaintInput{Category: "HANTU", Priority: "SANGAT"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"penyewaId", "judul", "deskripsi", "kategori", "prioritas"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestCreateComplaint_UnknownTenant(t *testing.T) {
	complaints := new(mockComplaintRepo)
	complaints.On("CreateComplaint", mock.Anything, mock.Anything).Return(repository.ErrConflict)
	s := newServiceWith(Repositories{Complaints: complaints})

	_, err := s.CreateComplaint(context.Background(), CreateComplaintInput{
		TenantID: "missing", Title: "Pintu", Description: "Rusak", Category: "LAINNYA", Priority: models.PriorityLow,
	})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestUpdateComplaint_DoneStampsResolution(t *testing.T) {
	complaints := new(mockComplaintRepo)
	status := models.ComplaintDone
	cost := decimal.NewFromInt(50000)
	complaints.On("UpdateComplaint", mock.Anything, "c-1", mock.MatchedBy(func(p models.ComplaintPatch) bool {
		return p.ResolvedAt != nil && p.ResolvedAt.Equal(fixedNow) && p.RepairCost.Equal(cost)
	})).Return(&models.Complaint{ID: "c-1", Status: models.ComplaintDone}, nil)
	s := newServiceWith(Repositories{Complaints: complaints})

	_, err := s.UpdateComplaint(context.Background(), "c-1", UpdateComplaintInput{Status: &status, RepairCost: &cost})
	require.NoError(t, err)
	complaints.AssertExpectations(t)
}

func TestUpdateComplaint_Rejected(t *testing.T) {
	complaints := new(mockComplaintRepo)
	status := models.ComplaintRejected
	complaints.On("UpdateComplaint", mock.Anything, "c-1", models.ComplaintPatch{Status: &status}).
		Return(&models.Complaint{ID: "c-1", Status: models.ComplaintRejected}, nil)
	s := newServiceWith(Repositories{Complaints: complaints})

	c, err := s.UpdateComplaint(context.Background(), "c-1", UpdateComplaintInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintRejected, c.Status)

	bad := "DIBATALKAN"
	_, err = s.UpdateComplaint(context.Background(), "c-1", UpdateComplaintInput{Status: &bad})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestListComplaints(t *testing.T) {
	complaints := new(mockComplaintRepo)
	complaints.On("ListComplaints", mock.Anything, models.ComplaintFilter{TenantID: "t-1", Limit: 5, Offset: 5}).
		Return([]models.Complaint{{ID: "c-6"}}, int64(6), nil)
	s := newServiceWith(Repositories{Complaints: complaints})

	page, err := s.ListComplaints(context.Background(), models.ComplaintFilter{TenantID: "t-1"}, 2, 5)
	require.NoError(t, err)
	assert.False(t, page.Pagination.HasMore)
	assert.Equal(t, 2, page.Pagination.TotalPages)
}
