package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/shopspring/decimal"
)

// ComplaintRepository is the complaint storage the service needs
type ComplaintRepository interface {
	CreateComplaint(ctx context.Context, c *models.Complaint) error
	GetComplaint(ctx context.Context, id string) (*models.Complaint, error)
	ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int64, error)
	UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error)
	DeleteComplaint(ctx context.Context, id string) error
}

// CreateComplaintInput is the payload for filing a complaint
type CreateComplaintInput struct {
	TenantID    string `json:"penyewaId"`
	Title       string `json:"judul"`
	Description string `json:"deskripsi"`
	Category    string `json:"kategori"`
	Priority    string `json:"prioritas"`
}

// UpdateComplaintInput is the payload for handling a complaint
type UpdateComplaintInput struct {
	Status     *string          `json:"status"`
	Response   *string          `json:"tanggapan"`
	RepairCost *decimal.Decimal `json:"biayaPerbaikan"`
	ResolvedAt *string          `json:"diselesaikanPada"`
}

// CreateComplaint validates in and files it as a new complaint with medium
// priority unless another priority is given
func (s *Service) CreateComplaint(ctx context.Context, in CreateComplaintInput) (*models.Complaint, error) {
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}

	fields := fieldErrors{}
	fields.required("penyewaId", in.TenantID)
	fields.required("judul", in.Title)
	fields.required("deskripsi", in.Description)
	fields.required("kategori", in.Category)
	fields.oneOf("kategori", in.Category, models.ComplaintCategories)
	fields.oneOf("prioritas", in.Priority, models.ComplaintPriorities)
	if err := fields.err(); err != nil {
		return nil, err
	}

	c := &models.Complaint{
		TenantID:    in.TenantID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      models.ComplaintNew,
	}
	if err := s.complaints.CreateComplaint(ctx, c); err != nil {
		return nil, err
	}
	s.log.Infof("Complaint %s filed by tenant %s", c.ID, c.TenantID)
	return c, nil
}

// GetComplaint returns one complaint with its tenant
func (s *Service) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	return s.complaints.GetComplaint(ctx, id)
}

// ListComplaints returns one page of complaints matching f, newest first
func (s *Service) ListComplaints(ctx context.Context, f models.ComplaintFilter, page, limit int) (*models.Page[models.Complaint], error) {
	page, limit, f.Offset = clampPage(page, limit)
	f.Limit = limit

	items, total, err := s.complaints.ListComplaints(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// UpdateComplaint records the handling of a complaint. Moving it to done
// without an explicit resolution time stamps the current time.
func (s *Service) UpdateComplaint(ctx context.Context, id string, in UpdateComplaintInput) (*models.Complaint, error) {
	fields := fieldErrors{}
	patch := models.ComplaintPatch{
		Status:     in.Status,
		Response:   in.Response,
		RepairCost: in.RepairCost,
	}
	if in.Status != nil {
		fields.required("status", *in.Status)
		fields.oneOf("status", *in.Status, models.ComplaintStatuses)
	}
	if in.RepairCost != nil && in.RepairCost.IsNegative() {
		fields.add("biayaPerbaikan", "biayaPerbaikan must not be negative")
	}
	if in.ResolvedAt != nil {
		resolved := fields.date("diselesaikanPada", *in.ResolvedAt, s.location())
		patch.ResolvedAt = &resolved
	} else if in.Status != nil && *in.Status == models.ComplaintDone {
		resolved := s.now().In(s.location())
		patch.ResolvedAt = &resolved
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	c, err := s.complaints.UpdateComplaint(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Complaint %s moved to %s", c.ID, c.Status)
	return c, nil
}

// DeleteComplaint removes a complaint
func (s *Service) DeleteComplaint(ctx context.Context, id string) error {
	if err := s.complaints.DeleteComplaint(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Complaint %s deleted", id)
	return nil
}
