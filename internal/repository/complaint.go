package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const complaintColumns = "id, tenant_id, title, description, category, priority, status, response, repair_cost, resolved_at, created_at, updated_at"

const complaintSelect = "SELECT c.id, c.tenant_id, c.title, c.description, c.category, c.priority, c.status, " +
	"c.response, c.repair_cost, c.resolved_at, c.created_at, c.updated_at, t.name, t.email, t.phone " +
	"FROM complaints c JOIN tenants t ON t.id = c.tenant_id"

func scanComplaint(row rowScanner, withTenant bool) (*models.Complaint, error) {
	var (
		c        models.Complaint
		response sql.NullString
		cost     decimal.NullDecimal
		resolved sql.NullTime
		tenant   models.TenantSummary
	)
	dest := []any{&c.ID, &c.TenantID, &c.Title, &c.Description, &c.Category, &c.Priority, &c.Status,
		&response, &cost, &resolved, &c.CreatedAt, &c.UpdatedAt}
	if withTenant {
		dest = append(dest, &tenant.Name, &tenant.Email, &tenant.Phone)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if response.Valid {
		c.Response = &response.String
	}
	if cost.Valid {
		c.RepairCost = &cost.Decimal
	}
	if resolved.Valid {
		c.ResolvedAt = &resolved.Time
	}
	if withTenant {
		tenant.ID = c.TenantID
		c.Tenant = &tenant
	}
	return &c, nil
}

// CreateComplaint inserts a complaint
func (r *Repository) CreateComplaint(ctx context.Context, c *models.Complaint) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	query := "INSERT INTO complaints (id, tenant_id, title, description, category, priority, status, created_at, updated_at) " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, clock_timestamp(), clock_timestamp()) " +
		"RETURNING created_at, updated_at"
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.TenantID, c.Title, c.Description, c.Category, c.Priority, c.Status,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create complaint: %w", translate(err))
	}
	return nil
}

// GetComplaint retrieves a complaint with its tenant summary
func (r *Repository) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	c, err := scanComplaint(r.db.QueryRowContext(ctx, complaintSelect+" WHERE c.id = $1", id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("complaint %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}
	return c, nil
}

// ListComplaints returns complaints matching f, newest first
func (r *Repository) ListComplaints(ctx context.Context, f models.ComplaintFilter) ([]models.Complaint, int64, error) {
	var c conditions
	c.eq("c.status", f.Status)
	c.eq("c.tenant_id", f.TenantID)
	c.eq("c.category", f.Category)
	c.eq("c.priority", f.Priority)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM complaints c"+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx, complaintSelect+c.where()+" ORDER BY c.created_at DESC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}
	defer rows.Close()

	complaints := []models.Complaint{}
	for rows.Next() {
		item, err := scanComplaint(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan complaint: %w", err)
		}
		complaints = append(complaints, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read complaints: %w", err)
	}
	return complaints, total, nil
}

// UpdateComplaint applies patch to the complaint and returns the stored row
func (r *Repository) UpdateComplaint(ctx context.Context, id string, patch models.ComplaintPatch) (*models.Complaint, error) {
	var a assignments
	if patch.Status != nil {
		a.set("status", *patch.Status)
	}
	if patch.Response != nil {
		a.set("response", *patch.Response)
	}
	if patch.RepairCost != nil {
		a.set("repair_cost", *patch.RepairCost)
	}
	if patch.ResolvedAt != nil {
		a.set("resolved_at", *patch.ResolvedAt)
	}

	query, args := a.update("complaints", id, complaintColumns)
	c, err := scanComplaint(r.db.QueryRowContext(ctx, query, args...), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("complaint %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update complaint: %w", translate(err))
	}
	return c, nil
}

// DeleteComplaint removes a complaint
func (r *Repository) DeleteComplaint(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "complaints", id)
}
