package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/shopspring/decimal"
)

// RoomRepository is the room storage the service needs
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	ListRooms(ctx context.Context, f models.RoomFilter) ([]models.Room, int64, error)
	UpdateRoom(ctx context.Context, id string, patch models.RoomPatch) (*models.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// CreateRoomInput is the payload for adding a room
type CreateRoomInput struct {
	Number       string          `json:"nomorKamar"`
	Floor        int             `json:"lantai"`
	Type         string          `json:"tipe"`
	MonthlyPrice decimal.Decimal `json:"hargaPerBulan"`
	Status       string          `json:"status"`
	Capacity     int             `json:"kapasitas"`
	Size         *float64        `json:"luasKamar"`
	Facilities   []string        `json:"fasilitas"`
	Description  *string         `json:"deskripsi"`
}

// UpdateRoomInput is the payload for editing a room
type UpdateRoomInput struct {
	Number       *string          `json:"nomorKamar"`
	Floor        *int             `json:"lantai"`
	Type         *string          `json:"tipe"`
	MonthlyPrice *decimal.Decimal `json:"hargaPerBulan"`
	Status       *string          `json:"status"`
	Capacity     *int             `json:"kapasitas"`
	Size         *float64         `json:"luasKamar"`
	Facilities   *[]string        `json:"fasilitas"`
	Description  *string          `json:"deskripsi"`
}

// CreateRoom validates in and stores a new room. Status defaults to
// available and capacity to one occupant.
func (s *Service) CreateRoom(ctx context.Context, in CreateRoomInput) (*models.Room, error) {
	in.Number = strings.TrimSpace(in.Number)
	if in.Status == "" {
		in.Status = models.RoomAvailable
	}
	if in.Capacity == 0 {
		in.Capacity = 1
	}

	fields := fieldErrors{}
	fields.required("nomorKamar", in.Number)
	fields.required("tipe", in.Type)
	if in.Floor < 1 {
		fields.add("lantai", "lantai is required")
	}
	if !in.MonthlyPrice.IsPositive() {
		fields.add("hargaPerBulan", "hargaPerBulan must be greater than zero")
	}
	validateRoom(fields, in.Type, in.Status, in.Capacity, in.Size)
	if err := fields.err(); err != nil {
		return nil, err
	}

	room := &models.Room{
		Number:       in.Number,
		Floor:        in.Floor,
		Type:         in.Type,
		MonthlyPrice: in.MonthlyPrice,
		Status:       in.Status,
		Capacity:     in.Capacity,
		Size:         in.Size,
		Facilities:   in.Facilities,
		Description:  in.Description,
	}
	if err := s.rooms.CreateRoom(ctx, room); err != nil {
		return nil, err
	}
	s.log.Infof("Room %s created", room.Number)
	return room, nil
}

func validateRoom(fields fieldErrors, typ, status string, capacity int, size *float64) {
	fields.oneOf("tipe", typ, models.RoomTypes)
	fields.oneOf("status", status, models.RoomStatuses)
	if capacity < 1 {
		fields.add("kapasitas", "kapasitas must be at least 1")
	}
	if size != nil && *size <= 0 {
		fields.add("luasKamar", "luasKamar must be greater than zero")
	}
}

// GetRoom returns one room
func (s *Service) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return s.rooms.GetRoom(ctx, id)
}

// ListRooms returns one page of rooms matching f ordered by room number
func (s *Service) ListRooms(ctx context.Context, f models.RoomFilter, page, limit int) (*models.Page[models.Room], error) {
	page, limit, f.Offset = clampPage(page, limit)
	f.Limit = limit

	items, total, err := s.rooms.ListRooms(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return newPage(items, total, page, limit), nil
}

// UpdateRoom validates the supplied fields and applies them
func (s *Service) UpdateRoom(ctx context.Context, id string, in UpdateRoomInput) (*models.Room, error) {
	fields := fieldErrors{}
	if in.Number != nil {
		number := strings.TrimSpace(*in.Number)
		in.Number = &number
		fields.required("nomorKamar", number)
	}
	if in.Floor != nil && *in.Floor < 1 {
		fields.add("lantai", "lantai must be at least 1")
	}
	if in.MonthlyPrice != nil && !in.MonthlyPrice.IsPositive() {
		fields.add("hargaPerBulan", "hargaPerBulan must be greater than zero")
	}
	typ, status, capacity := "", "", 1
	if in.Type != nil {
		typ = *in.Type
		fields.required("tipe", typ)
	}
	if in.Status != nil {
		status = *in.Status
		fields.required("status", status)
	}
	if in.Capacity != nil {
		capacity = *in.Capacity
	}
	validateRoom(fields, typ, status, capacity, in.Size)
	if err := fields.err(); err != nil {
		return nil, err
	}

	room, err := s.rooms.UpdateRoom(ctx, id, models.RoomPatch{
		Number:       in.Number,
		Floor:        in.Floor,
		Type:         in.Type,
		MonthlyPrice: in.MonthlyPrice,
		Status:       in.Status,
		Capacity:     in.Capacity,
		Size:         in.Size,
		Facilities:   in.Facilities,
		Description:  in.Description,
	})
	if err != nil {
		return nil, err
	}
	s.log.Infof("Room %s updated", room.Number)
	return room, nil
}

// DeleteRoom removes a room
func (s *Service) DeleteRoom(ctx context.Context, id string) error {
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Room %s deleted", id)
	return nil
}
