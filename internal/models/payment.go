package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment status values as stored in the database
const (
	PaymentPending   = "PENDING"
	PaymentPaid      = "LUNAS"
	PaymentLate      = "TELAT"
	PaymentCancelled = "BATAL"
)

// Payment method values
const (
	MethodCash     = "TUNAI"
	MethodTransfer = "TRANSFER"
	MethodEWallet  = "EWALLET"
	MethodDebit    = "DEBIT"
)

// PaymentStatuses lists every valid payment status
var PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentLate, PaymentCancelled}

// PaymentMethods lists every valid payment method
var PaymentMethods = []string{MethodCash, MethodTransfer, MethodEWallet, MethodDebit}

// OutstandingStatuses are the statuses that still owe money
var OutstandingStatuses = []string{PaymentPending, PaymentLate}

// Payment is an invoice for one tenant and one room for a payment month
type Payment struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"nomorInvoice"`
	TenantID      string          `json:"penyewaId"`
	RoomID        string          `json:"kamarId"`
	PaymentMonth  string          `json:"bulanPembayaran"` // Format: YYYY-MM
	Amount        decimal.Decimal `json:"jumlah"`
	Method        string          `json:"metodePembayaran"`
	Status        string          `json:"status"`
	Note          *string         `json:"keterangan,omitempty"`
	ProofURL      *string         `json:"buktiUrl,omitempty"`
	DueDate       time.Time       `json:"jatuhTempo"`
	PaidDate      time.Time       `json:"tanggalBayar"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`

	Tenant *TenantSummary `json:"penyewa,omitempty"`
	Room   *RoomSummary   `json:"kamar,omitempty"`
}

// PaymentPatch holds the fields of a partial payment update. Nil fields are left unchanged.
type PaymentPatch struct {
	PaymentMonth *string
	Amount       *decimal.Decimal
	Method       *string
	Status       *string
	Note         *string
	ProofURL     *string
	DueDate      *time.Time
	PaidDate     *time.Time
}

// PaymentFilter narrows payment listings
type PaymentFilter struct {
	Status   string
	TenantID string
	RoomID   string
	Month    string
	Limit    int
	Offset   int
}

// OverduePayment is a pending payment past its due date with the tenant contact
type OverduePayment struct {
	PaymentID     string
	InvoiceNumber string
	PaymentMonth  string
	Amount        decimal.Decimal
	DueDate       time.Time
	TenantName    string
	TenantEmail   string
}
