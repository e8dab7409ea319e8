package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/google/uuid"
)

const tenantColumns = "id, name, email, phone, home_address, birth_date, occupation, id_card_number, room_id, status, move_in_date, created_at, updated_at"

const tenantSelect = "SELECT t.id, t.name, t.email, t.phone, t.home_address, t.birth_date, t.occupation, " +
	"t.id_card_number, t.room_id, t.status, t.move_in_date, t.created_at, t.updated_at, r.number, r.type " +
	"FROM tenants t LEFT JOIN rooms r ON r.id = t.room_id"

func scanTenant(row rowScanner, withRoom bool) (*models.Tenant, error) {
	var (
		t                        models.Tenant
		occupation, idCard, room sql.NullString
		roomNumber, roomType     sql.NullString
	)
	dest := []any{&t.ID, &t.Name, &t.Email, &t.Phone, &t.HomeAddress, &t.BirthDate, &occupation,
		&idCard, &room, &t.Status, &t.MoveInDate, &t.CreatedAt, &t.UpdatedAt}
	if withRoom {
		dest = append(dest, &roomNumber, &roomType)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if occupation.Valid {
		t.Occupation = &occupation.String
	}
	if idCard.Valid {
		t.IDCardNumber = &idCard.String
	}
	if room.Valid {
		t.RoomID = &room.String
		if withRoom && roomNumber.Valid {
			t.Room = &models.RoomSummary{ID: room.String, Number: roomNumber.String, Type: roomType.String}
		}
	}
	return &t, nil
}

// CreateTenant inserts a tenant
func (r *Repository) CreateTenant(ctx context.Context, t *models.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := "INSERT INTO tenants (" + tenantColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, clock_timestamp(), clock_timestamp()) " +
		"RETURNING created_at, updated_at"
	err := r.db.QueryRowContext(ctx, query,
		t.ID, t.Name, t.Email, t.Phone, t.HomeAddress, t.BirthDate, t.Occupation, t.IDCardNumber,
		t.RoomID, t.Status, t.MoveInDate,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tenant: %w", translate(err))
	}
	return nil
}

// GetTenant retrieves a tenant with its room summary
func (r *Repository) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	t, err := scanTenant(r.db.QueryRowContext(ctx, tenantSelect+" WHERE t.id = $1", id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return t, nil
}

// ListTenants returns tenants matching f, newest first
func (r *Repository) ListTenants(ctx context.Context, f models.TenantFilter) ([]models.Tenant, int64, error) {
	var c conditions
	if f.Search != "" {
		c.add("(t.name ILIKE $%[1]d OR t.email ILIKE $%[1]d OR t.phone ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	c.eq("t.status", f.Status)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tenants t"+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tenants: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx, tenantSelect+c.where()+" ORDER BY t.created_at DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []models.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tenants: %w", err)
	}
	return tenants, total, nil
}

// UpdateTenant applies patch to the tenant and returns the stored row
func (r *Repository) UpdateTenant(ctx context.Context, id string, patch models.TenantPatch) (*models.Tenant, error) {
	var a assignments
	if patch.Name != nil {
		a.set("name", *patch.Name)
	}
	if patch.Email != nil {
		a.set("email", *patch.Email)
	}
	if patch.Phone != nil {
		a.set("phone", *patch.Phone)
	}
	if patch.HomeAddress != nil {
		a.set("home_address", *patch.HomeAddress)
	}
	if patch.BirthDate != nil {
		a.set("birth_date", *patch.BirthDate)
	}
	if patch.Occupation != nil {
		a.set("occupation", *patch.Occupation)
	}
	if patch.IDCardNumber != nil {
		a.set("id_card_number", *patch.IDCardNumber)
	}
	if patch.RoomID != nil {
		// An empty room id moves the tenant out of their room
		a.set("room_id", sql.NullString{String: *patch.RoomID, Valid: *patch.RoomID != ""})
	}
	if patch.Status != nil {
		a.set("status", *patch.Status)
	}

	query, args := a.update("tenants", id, tenantColumns)
	t, err := scanTenant(r.db.QueryRowContext(ctx, query, args...), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", translate(err))
	}
	return t, nil
}

// DeleteTenant removes a tenant. Tenants with payments or complaints yield ErrConflict.
func (r *Repository) DeleteTenant(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "tenants", id)
}
