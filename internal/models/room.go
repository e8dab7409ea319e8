package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room status values
const (
	RoomAvailable   = "TERSEDIA"
	RoomOccupied    = "TERISI"
	RoomMaintenance = "MAINTENANCE"
	RoomBooked      = "BOOKING"
)

// Room type values
const (
	RoomStandard = "STANDAR"
	RoomPremium  = "PREMIUM"
	RoomVIP      = "VIP"
)

// RoomStatuses lists every valid room status
var RoomStatuses = []string{RoomAvailable, RoomOccupied, RoomMaintenance, RoomBooked}

// RoomTypes lists every valid room type
var RoomTypes = []string{RoomStandard, RoomPremium, RoomVIP}

// Room is a rentable room
type Room struct {
	ID           string          `json:"id"`
	Number       string          `json:"nomorKamar"`
	Floor        int             `json:"lantai"`
	Type         string          `json:"tipe"`
	MonthlyPrice decimal.Decimal `json:"hargaPerBulan"`
	Status       string          `json:"status"`
	Capacity     int             `json:"kapasitas"`
	Size         *float64        `json:"luasKamar,omitempty"` // Square meters
	Facilities   []string        `json:"fasilitas"`
	Description  *string         `json:"deskripsi,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// RoomSummary is the short form of a room embedded in other records
type RoomSummary struct {
	ID     string `json:"id"`
	Number string `json:"nomorKamar"`
	Type   string `json:"tipe"`
}

// RoomPatch holds the fields of a partial room update. Nil fields are left unchanged.
type RoomPatch struct {
	Number       *string
	Floor        *int
	Type         *string
	MonthlyPrice *decimal.Decimal
	Status       *string
	Capacity     *int
	Size         *float64
	Facilities   *[]string
	Description  *string
}

// RoomFilter narrows room listings. A zero Floor matches every floor.
type RoomFilter struct {
	Status string
	Type   string
	Floor  int
	Limit  int
	Offset int
}
