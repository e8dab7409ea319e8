package models

import "time"

// Tenant status values
const (
	TenantActive    = "AKTIF"
	TenantLeft      = "KELUAR"
	TenantSuspended = "SUSPEND"
)

// TenantStatuses lists every valid tenant status
var TenantStatuses = []string{TenantActive, TenantLeft, TenantSuspended}

// Tenant is a person renting a room
type Tenant struct {
	ID           string    `json:"id"`
	Name         string    `json:"nama"`
	Email        string    `json:"email"`
	Phone        string    `json:"noHp"`
	HomeAddress  string    `json:"alamatAsal"`
	BirthDate    time.Time `json:"tanggalLahir"`
	Occupation   *string   `json:"pekerjaan,omitempty"`
	IDCardNumber *string   `json:"ktpNumber,omitempty"`
	RoomID       *string   `json:"kamarId,omitempty"`
	Status       string    `json:"status"`
	MoveInDate   time.Time `json:"tanggalMasuk"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Room *RoomSummary `json:"kamar,omitempty"`
}

// TenantSummary is the short form of a tenant embedded in other records
type TenantSummary struct {
	ID    string `json:"id"`
	Name  string `json:"nama"`
	Email string `json:"email"`
	Phone string `json:"noHp"`
}

// TenantPatch holds the fields of a partial tenant update. Nil fields are left unchanged.
type TenantPatch struct {
	Name         *string
	Email        *string
	Phone        *string
	HomeAddress  *string
	BirthDate    *time.Time
	Occupation   *string
	IDCardNumber *string
	RoomID       *string
	Status       *string
}

// TenantFilter narrows tenant listings. Search matches name, email or phone.
type TenantFilter struct {
	Search string
	Status string
	Limit  int
	Offset int
}
