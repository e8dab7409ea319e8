package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/kos-service/internal/models"
)

// TenantRepository is the tenant storage the service needs
type TenantRepository interface {
	CreateTenant(ctx context.Context, t *models.Tenant) error
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)
	ListTenants(ctx context.Context, f models.TenantFilter) ([]models.Tenant, int64, error)
	UpdateTenant(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
}

// CreateTenantInput is the payload for registering a tenant
type CreateTenantInput struct {
	Name         string `json:"nama"`
	Email        string `json:"email"`
	Phone        string `json:"noHp"`
	HomeAddress  string `json:"alamatAsal"`
	BirthDate    string `json:"tanggalLahir"`
	Occupation   string `json:"pekerjaan"`
	IDCardNumber string `json:"ktpNumber"`
	RoomID       string `json:"kamarId"`
	Status       string `json:"status"`
	MoveInDate   string `json:"tanggalMasuk"`
}

// UpdateTenantInput is the payload for editing a tenant. An empty kamarId
// clears the room assignment.
type UpdateTenantInput struct {
	Name         *string `json:"nama"`
	Email        *string `json:"email"`
	Phone        *string `json:"noHp"`
	HomeAddress  *string `json:"alamatAsal"`
	BirthDate    *string `json:"tanggalLahir"`
	Occupation   *string `json:"pekerjaan"`
	IDCardNumber *string `json:"ktpNumber"`
	RoomID       *string `json:"kamarId"`
	Status       *string `json:"status"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CreateTenant validates in and registers the tenant. Status defaults to
// active and the move-in date to today.
func (s *Service) CreateTenant(ctx context.Context, in CreateTenantInput) (*models.Tenant, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Status == "" {
		in.Status = models.TenantActive
	}

	fields := fieldErrors{}
	fields.required("nama", in.Name)
	fields.required("email", in.Email)
	fields.required("noHp", in.Phone)
	fields.required("alamatAsal", in.HomeAddress)
	fields.required("tanggalLahir", in.BirthDate)
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		fields.add("email", "email is invalid")
	}
	fields.oneOf("status", in.Status, models.TenantStatuses)

	loc := s.location()
	t := &models.Tenant{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		Phone:        strings.TrimSpace(in.Phone),
		HomeAddress:  in.HomeAddress,
		Occupation:   optional(in.Occupation),
		IDCardNumber: optional(in.IDCardNumber),
		RoomID:       optional(in.RoomID),
		Status:       in.Status,
		MoveInDate:   s.now().In(loc),
	}
	if in.BirthDate != "" {
		t.BirthDate = fields.date("tanggalLahir", in.BirthDate, loc)
	}
	if in.MoveInDate != "" {
		t.MoveInDate = fields.date("tanggalMasuk", in.MoveInDate, loc)
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	if err := s.tenants.CreateTenant(ctx, t); err != nil {
		return nil, err
	}
	s.log.Infof("Tenant %s registered", t.Email)
	return t, nil
}

// GetTenant returns one tenant with its room
func (s *Service) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	return s.tenants.GetTenant(ctx, id)
}

// ListTenants returns one page of tenants matching f, newest first
func (s *Service) ListTenants(ctx context.Context, f models.TenantFilter, page, limit int) (*models.Page[models.Tenant], error) {
	page, limit, f.Offset = clampPage(page, limit)
	f.Limit = limit
	f.Search = strings.TrimSpace(f.Search)

	items, total, err := s.tenants.ListTenants(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// UpdateTenant validates the supplied fields and applies them
func (s *Service) UpdateTenant(ctx context.Context, id string, in UpdateTenantInput) (*models.Tenant, error) {
	fields := fieldErrors{}
	patch := models.TenantPatch{
		Name:         in.Name,
		Phone:        in.Phone,
		HomeAddress:  in.HomeAddress,
		Occupation:   in.Occupation,
		IDCardNumber: in.IDCardNumber,
		RoomID:       in.RoomID,
		Status:       in.Status,
	}
	if in.Name != nil {
		fields.required("nama", *in.Name)
	}
	if in.Phone != nil {
		fields.required("noHp", *in.Phone)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !emailPattern.MatchString(email) {
			fields.add("email", "email is invalid")
		}
		patch.Email = &email
	}
	if in.Status != nil {
		fields.required("status", *in.Status)
		fields.oneOf("status", *in.Status, models.TenantStatuses)
	}
	if in.BirthDate != nil {
		birth := fields.date("tanggalLahir", *in.BirthDate, s.location())
		patch.BirthDate = &birth
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	t, err := s.tenants.UpdateTenant(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Tenant %s updated", t.Email)
	return t, nil
}

// DeleteTenant removes a tenant
func (s *Service) DeleteTenant(ctx context.Context, id string) error {
	if err := s.tenants.DeleteTenant(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Tenant %s deleted", id)
	return nil
}
