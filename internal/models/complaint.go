package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Complaint status values
const (
	ComplaintNew        = "BARU"
	ComplaintInProgress = "DIPROSES"
	ComplaintDone       = "SELESAI"
	ComplaintRejected   = "DITOLAK"
)

// Complaint priority values
const (
	PriorityLow       = "RENDAH"
	PriorityMedium    = "SEDANG"
	PriorityHigh      = "TINGGI"
	PriorityEmergency = "DARURAT"
)

// ComplaintStatuses lists every valid complaint status
var ComplaintStatuses = []string{ComplaintNew, ComplaintInProgress, ComplaintDone, ComplaintRejected}

// ComplaintPriorities lists every valid complaint priority
var ComplaintPriorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityEmergency}

// ComplaintCategories lists every valid complaint category
var ComplaintCategories = []string{
	"LISTRIK", "AIR", "KAMAR_MANDI", "FURNITURE", "AC", "KEBERSIHAN", "KEAMANAN", "LAINNYA",
}

// Complaint is a maintenance or service issue raised by a tenant
type Complaint struct {
	ID          string           `json:"id"`
	TenantID    string           `json:"penyewaId"`
	Title       string           `json:"judul"`
	Description string           `json:"deskripsi"`
	Category    string           `json:"kategori"`
	Priority    string           `json:"prioritas"`
	Status      string           `json:"status"`
	Response    *string          `json:"tanggapan,omitempty"`
	RepairCost  *decimal.Decimal `json:"biayaPerbaikan,omitempty"`
	ResolvedAt  *time.Time       `json:"diselesaikanPada,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	Tenant *TenantSummary `json:"penyewa,omitempty"`
}

// ComplaintPatch holds the fields of a complaint update. Nil fields are left unchanged.
type ComplaintPatch struct {
	Status     *string
	Response   *string
	RepairCost *decimal.Decimal
	ResolvedAt *time.Time
}

// ComplaintFilter narrows complaint listings
type ComplaintFilter struct {
	Status   string
	TenantID string
	Category string
	Priority string
	Limit    int
	Offset   int
}
