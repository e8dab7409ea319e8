package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/kos-service/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const roomColumns = "id, number, floor, type, monthly_price, status, capacity, size, facilities, description, created_at, updated_at"

func scanRoom(row rowScanner) (*models.Room, error) {
	var (
		room models.Room
		size sql.NullFloat64
		desc sql.NullString
	)
	err := row.Scan(&room.ID, &room.Number, &room.Floor, &room.Type, &room.MonthlyPrice, &room.Status,
		&room.Capacity, &size, pq.Array(&room.Facilities), &desc, &room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if size.Valid {
		room.Size = &size.Float64
	}
	if desc.Valid {
		room.Description = &desc.String
	}
	if room.Facilities == nil {
		room.Facilities = []string{}
	}
	return &room, nil
}

// CreateRoom inserts a room
func (r *Repository) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Facilities == nil {
		room.Facilities = []string{}
	}
	query := "INSERT INTO rooms (" + roomColumns + ") " +
		"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, clock_timestamp(), clock_timestamp()) " +
		"RETURNING created_at, updated_at"
	err := r.db.QueryRowContext(ctx, query,
		room.ID, room.Number, room.Floor, room.Type, room.MonthlyPrice, room.Status, room.Capacity,
		room.Size, pq.Array(room.Facilities), room.Description,
	).Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", translate(err))
	}
	return nil
}

// GetRoom retrieves a room by id
func (r *Repository) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	room, err := scanRoom(r.db.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM rooms WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// ListRooms returns rooms matching f ordered by room number
func (r *Repository) ListRooms(ctx context.Context, f models.RoomFilter) ([]models.Room, int64, error) {
	var c conditions
	c.eq("status", f.Status)
	c.eq("type", f.Type)
	if f.Floor != 0 {
		c.add("floor = $%d", f.Floor)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM rooms"+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rooms: %w", err)
	}

	limit, args := c.page(f.Limit, f.Offset)
	rows, err := r.db.QueryContext(ctx, "SELECT "+roomColumns+" FROM rooms"+c.where()+" ORDER BY number ASC"+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read rooms: %w", err)
	}
	return rooms, total, nil
}

// UpdateRoom applies patch to the room and returns the stored row
func (r *Repository) UpdateRoom(ctx context.Context, id string, patch models.RoomPatch) (*models.Room, error) {
	var a assignments
	if patch.Number != nil {
		a.set("number", *patch.Number)
	}
	if patch.Floor != nil {
		a.set("floor", *patch.Floor)
	}
	if patch.Type != nil {
		a.set("type", *patch.Type)
	}
	if patch.MonthlyPrice != nil {
		a.set("monthly_price", *patch.MonthlyPrice)
	}
	if patch.Status != nil {
		a.set("status", *patch.Status)
	}
	if patch.Capacity != nil {
		a.set("capacity", *patch.Capacity)
	}
	if patch.Size != nil {
		a.set("size", *patch.Size)
	}
	if patch.Facilities != nil {
		a.set("facilities", pq.Array(*patch.Facilities))
	}
	if patch.Description != nil {
		a.set("description", *patch.Description)
	}

	query, args := a.update("rooms", id, roomColumns)
	room, err := scanRoom(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", translate(err))
	}
	return room, nil
}

// DeleteRoom removes a room. Rooms still referenced by tenants or payments
// yield ErrConflict.
func (r *Repository) DeleteRoom(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "rooms", id)
}
