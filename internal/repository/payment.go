package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// invoiceLockKey serializes invoice number allocation across connections
const invoiceLockKey = 7301

// lastInvoiceQuery picks the highest INV- number. Longer numbers sort first
// so INV-1000 follows INV-999; creation timestamps play no part.
const lastInvoiceQuery = "SELECT invoice_number FROM payments WHERE invoice_number LIKE 'INV-%' " +
	"ORDER BY LENGTH(invoice_number) DESC, invoice_number DESC LIMIT 1"

const paymentColumns = "id, invoice_number, tenant_id, room_id, payment_month, amount, method, status, note, proof_url, due_date, paid_date, created_at, updated_at"

const paymentSelect = "SELECT p.id, p.invoice_number, p.tenant_id, p.room_id, p.payment_month, p.amount, p.method, " +
	"p.status, p.note, p.proof_url, p.due_date, p.paid_date, p.created_at, p.updated_at, " +
	"t.name, t.email, t.phone, r.number, r.type " +
	"FROM payments p JOIN tenants t ON t.id = p.tenant_id JOIN rooms r ON r.id = p.room_id"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner, withRelations bool) (*models.Payment, error) {
	var (
		p         models.Payment
		note, url sql.NullString
	)
	dest := []any{&p.ID, &p.InvoiceNumber, &p.TenantID, &p.RoomID, &p.PaymentMonth, &p.Amount,
		&p.Method, &p.Status, &note, &url, &p.DueDate, &p.PaidDate, &p.CreatedAt, &p.UpdatedAt}
	var (
		tenant models.TenantSummary
		room   models.RoomSummary
	)
	if withRelations {
		dest = append(dest, &tenant.Name, &tenant.Email, &tenant.Phone, &room.Number, &room.Type)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if note.Valid {
		p.Note = &note.String
	}
	if url.Valid {
		p.ProofURL = &url.String
	}
	if withRelations {
		tenant.ID, room.ID = p.TenantID, p.RoomID
		p.Tenant, p.Room = &tenant, &room
	}
	return &p, nil
}

// CreatePayment stores p under the invoice number produced by nextInvoice
// from the highest existing invoice. The lookup and insert run in one
// transaction holding an advisory lock so concurrent creates never collide.
func (r *Repository) CreatePayment(ctx context.Context, p *models.Payment, nextInvoice func(last string) (string, error)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", invoiceLockKey); err != nil {
		return fmt.Errorf("failed to lock invoice sequence: %w", err)
	}

	var last string
	err = tx.QueryRowContext(ctx, lastInvoiceQuery).Scan(&last)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to read last invoice: %w", err)
	}
	invoice, err := nextInvoice(last)
	if err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.InvoiceNumber = invoice
	query := "INSERT INTO payments (" + paymentColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, clock_timestamp(), clock_timestamp()) " +
		"RETURNING created_at, updated_at"
	err = tx.QueryRowContext(ctx, query,
		p.ID, p.InvoiceNumber, p.TenantID, p.RoomID, p.PaymentMonth, p.Amount, p.Method, p.Status,
		p.Note, p.ProofURL, p.DueDate, p.PaidDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", translate(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payment: %w", err)
	}
	return nil
}

// ListPayments returns payments matching f, most recently paid first, with
// tenant and room summaries, plus the total number of matches ignoring
// limit and offset
func (r *Repository) ListPayments(ctx context.Context, f models.PaymentFilter) ([]models.Payment, int64, error) {
	var c conditions
	c.eq("p.status", f.Status)
	c.eq("p.tenant_id", f.TenantID)
	c.eq("p.room_id", f.RoomID)
	c.eq("p.payment_month", f.Month)

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM payments p"+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	query := paymentSelect + c.where() + " ORDER BY p.paid_date DESC, p.created_at DESC" + limit
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := []models.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows, true)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read payments: %w", err)
	}
	return payments, total, nil
}

// GetPayment retrieves a payment with its tenant and room summaries
func (r *Repository) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, paymentSelect+" WHERE p.id = $1", id), true)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return p, nil
}

// UpdatePayment applies patch to the payment and returns the stored row
func (r *Repository) UpdatePayment(ctx context.Context, id string, patch models.PaymentPatch) (*models.Payment, error) {
	var a assignments
	if patch.PaymentMonth != nil {
		a.set("payment_month", *patch.PaymentMonth)
	}
	if patch.Amount != nil {
		a.set("amount", *patch.Amount)
	}
	if patch.Method != nil {
		a.set("method", *patch.Method)
	}
	if patch.Status != nil {
		a.set("status", *patch.Status)
	}
	if patch.Note != nil {
		a.set("note", *patch.Note)
	}
	if patch.ProofURL != nil {
		a.set("proof_url", *patch.ProofURL)
	}
	if patch.DueDate != nil {
		a.set("due_date", *patch.DueDate)
	}
	if patch.PaidDate != nil {
		a.set("paid_date", *patch.PaidDate)
	}

	query, args := a.update("payments", id, paymentColumns)
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", translate(err))
	}
	return p, nil
}

// DeletePayment removes a payment
func (r *Repository) DeletePayment(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "payments", id)
}

// ListOverduePayments returns pending payments due before asOf together with
// the tenant contact
func (r *Repository) ListOverduePayments(ctx context.Context, asOf time.Time) ([]models.OverduePayment, error) {
	query := `
		SELECT p.id, p.invoice_number, p.payment_month, p.amount, p.due_date, t.name, t.email
		FROM payments p
		JOIN tenants t ON t.id = p.tenant_id
		WHERE p.status = $1 AND p.due_date < $2
		ORDER BY p.due_date ASC`
	rows, err := r.db.QueryContext(ctx, query, models.PaymentPending, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue payments: %w", err)
	}
	defer rows.Close()

	var overdue []models.OverduePayment
	for rows.Next() {
		var o models.OverduePayment
		err := rows.Scan(&o.PaymentID, &o.InvoiceNumber, &o.PaymentMonth, &o.Amount, &o.DueDate,
			&o.TenantName, &o.TenantEmail)
		if err != nil {
			return nil, fmt.Errorf("failed to scan overdue payment: %w", err)
		}
		overdue = append(overdue, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read overdue payments: %w", err)
	}
	return overdue, nil
}

// MarkPaymentsLate moves the given pending payments to the late status and
// returns how many rows changed
func (r *Repository) MarkPaymentsLate(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `
		UPDATE payments
		SET status = $1, updated_at = clock_timestamp()
		WHERE status = $2 AND id = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, models.PaymentLate, models.PaymentPending, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("failed to mark payments late: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
