package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/Dan9191/kos-service/internal/utils"
	"github.com/shopspring/decimal"
)

// PaymentRepository is the payment storage the service needs
type PaymentRepository interface {
	CreatePayment(ctx context.Context, p *models.Payment, nextInvoice func(last string) (string, error)) error
	ListPayments(ctx context.Context, f models.PaymentFilter) ([]models.Payment, int64, error)
	GetPayment(ctx context.Context, id string) (*models.Payment, error)
	UpdatePayment(ctx context.Context, id string, patch models.PaymentPatch) (*models.Payment, error)
	DeletePayment(ctx context.Context, id string) error
}

// CreatePaymentInput is the payload for recording a payment
type CreatePaymentInput struct {
	TenantID     string          `json:"penyewaId"`
	RoomID       string          `json:"kamarId"`
	PaymentMonth string          `json:"bulanPembayaran"`
	Amount       decimal.Decimal `json:"jumlah"`
	Method       string          `json:"metodePembayaran"`
	Status       string          `json:"status"`
	Note         string          `json:"keterangan"`
	ProofURL     string          `json:"buktiUrl"`
	DueDate      string          `json:"jatuhTempo"`
	PaidDate     string          `json:"tanggalBayar"`
}

// UpdatePaymentInput is the payload for editing a payment. Omitted fields
// keep their stored value.
type UpdatePaymentInput struct {
	PaymentMonth *string          `json:"bulanPembayaran"`
	Amount       *decimal.Decimal `json:"jumlah"`
	Method       *string          `json:"metodePembayaran"`
	Status       *string          `json:"status"`
	Note         *string          `json:"keterangan"`
	ProofURL     *string          `json:"buktiUrl"`
	DueDate      *string          `json:"jatuhTempo"`
	PaidDate     *string          `json:"tanggalBayar"`
}

// CreatePayment validates in and stores it under the next invoice number
func (s *Service) CreatePayment(ctx context.Context, in CreatePaymentInput) (*models.Payment, error) {
	p, err := s.paymentFromInput(in)
	if err != nil {
		return nil, err
	}

	if err := s.payments.CreatePayment(ctx, p, utils.NextInvoiceNumber); err != nil {
		return nil, err
	}

	s.log.Infof("Payment %s created for tenant %s (%s)", p.InvoiceNumber, p.TenantID, p.PaymentMonth)
	return p, nil
}

func (s *Service) paymentFromInput(in CreatePaymentInput) (*models.Payment, error) {
	fields := fieldErrors{}
	fields.required("penyewaId", in.TenantID)
	fields.required("kamarId", in.RoomID)
	fields.required("bulanPembayaran", in.PaymentMonth)
	fields.required("metodePembayaran", in.Method)
	fields.required("jatuhTempo", in.DueDate)
	if in.Amount.IsZero() {
		fields.add("jumlah", "jumlah is required")
	}
	validateAmount(fields, in.Amount)
	validatePaymentMonth(fields, in.PaymentMonth)
	fields.oneOf("metodePembayaran", in.Method, models.PaymentMethods)
	status := in.Status
	if status == "" {
		status = models.PaymentPending
	}
	fields.oneOf("status", status, models.PaymentStatuses)

	loc := s.location()
	var due time.Time
	if in.DueDate != "" {
		due = fields.date("jatuhTempo", in.DueDate, loc)
	}
	paid := s.now().In(loc)
	if in.PaidDate != "" {
		paid = fields.date("tanggalBayar", in.PaidDate, loc)
	}

	if err := fields.err(); err != nil {
		return nil, err
	}

	p := &models.Payment{
		TenantID:     in.TenantID,
		RoomID:       in.RoomID,
		PaymentMonth: in.PaymentMonth,
		Amount:       in.Amount,
		Method:       in.Method,
		Status:       status,
		DueDate:      due,
		PaidDate:     paid,
	}
	if in.Note != "" {
		p.Note = &in.Note
	}
	if in.ProofURL != "" {
		p.ProofURL = &in.ProofURL
	}
	return p, nil
}

func validateAmount(fields fieldErrors, amount decimal.Decimal) {
	if amount.IsNegative() {
		fields.add("jumlah", "jumlah must not be negative")
	}
}

func validatePaymentMonth(fields fieldErrors, month string) {
	if month != "" && !paymentMonthPattern.MatchString(month) {
		fields.add("bulanPembayaran", "bulanPembayaran must be formatted YYYY-MM")
	}
}

// ListPayments returns one page of payments matching f. Page and limit are
// clamped to sane defaults.
func (s *Service) ListPayments(ctx context.Context, f models.PaymentFilter, page, limit int) (*models.Page[models.Payment], error) {
	page, limit, f.Offset = clampPage(page, limit)
	f.Limit = limit

	items, total, err := s.payments.ListPayments(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// GetPayment returns one payment with its tenant and room
func (s *Service) GetPayment(ctx context.Context, id string) (*models.Payment, error) {
	return s.payments.GetPayment(ctx, id)
}

// UpdatePayment validates the supplied fields and applies them
func (s *Service) UpdatePayment(ctx context.Context, id string, in UpdatePaymentInput) (*models.Payment, error) {
	fields := fieldErrors{}
	patch := models.PaymentPatch{
		PaymentMonth: in.PaymentMonth,
		Amount:       in.Amount,
		Method:       in.Method,
		Status:       in.Status,
		Note:         in.Note,
		ProofURL:     in.ProofURL,
	}
	if in.PaymentMonth != nil {
		fields.required("bulanPembayaran", *in.PaymentMonth)
		validatePaymentMonth(fields, *in.PaymentMonth)
	}
	if in.Amount != nil {
		validateAmount(fields, *in.Amount)
	}
	if in.Method != nil {
		fields.required("metodePembayaran", *in.Method)
		fields.oneOf("metodePembayaran", *in.Method, models.PaymentMethods)
	}
	if in.Status != nil {
		fields.required("status", *in.Status)
		fields.oneOf("status", *in.Status, models.PaymentStatuses)
	}

	loc := s.location()
	if in.DueDate != nil {
		due := fields.date("jatuhTempo", *in.DueDate, loc)
		patch.DueDate = &due
	}
	if in.PaidDate != nil {
		paid := fields.date("tanggalBayar", *in.PaidDate, loc)
		patch.PaidDate = &paid
	}
	if err := fields.err(); err != nil {
		return nil, err
	}

	p, err := s.payments.UpdatePayment(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Payment %s updated", p.InvoiceNumber)
	return p, nil
}

// DeletePayment removes a payment
func (s *Service) DeletePayment(ctx context.Context, id string) error {
	if err := s.payments.DeletePayment(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Payment %s deleted", id)
	return nil
}

func (s *Service) location() *time.Location {
	if s.config != nil && s.config.Location != nil {
		return s.config.Location
	}
	return time.UTC
}
