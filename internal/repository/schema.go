package repository

import (
	"context"
	"fmt"
)

// schema is applied in order by Migrate. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'ADMIN',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id            TEXT PRIMARY KEY,
		number        TEXT NOT NULL UNIQUE,
		floor         INTEGER NOT NULL,
		type          TEXT NOT NULL,
		monthly_price NUMERIC(14, 2) NOT NULL,
		status        TEXT NOT NULL DEFAULT 'TERSEDIA',
		capacity      INTEGER NOT NULL DEFAULT 1,
		size          DOUBLE PRECISION,
		facilities    TEXT[] NOT NULL DEFAULT '{}',
		description   TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS tenants (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		email          TEXT NOT NULL UNIQUE,
		phone          TEXT NOT NULL,
		home_address   TEXT NOT NULL,
		birth_date     DATE NOT NULL,
		occupation     TEXT,
		id_card_number TEXT,
		room_id        TEXT REFERENCES rooms (id),
		status         TEXT NOT NULL DEFAULT 'AKTIF',
		move_in_date   TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id             TEXT PRIMARY KEY,
		invoice_number TEXT NOT NULL UNIQUE,
		tenant_id      TEXT NOT NULL REFERENCES tenants (id),
		room_id        TEXT NOT NULL REFERENCES rooms (id),
		payment_month  TEXT NOT NULL,
		amount         NUMERIC(14, 2) NOT NULL,
		method         TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'PENDING',
		note           TEXT,
		proof_url      TEXT,
		due_date       TIMESTAMPTZ NOT NULL,
		paid_date      TIMESTAMPTZ NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id          TEXT PRIMARY KEY,
		tenant_id   TEXT NOT NULL REFERENCES tenants (id),
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		priority    TEXT NOT NULL DEFAULT 'SEDANG',
		status      TEXT NOT NULL DEFAULT 'BARU',
		response    TEXT,
		repair_cost NUMERIC(14, 2),
		resolved_at TIMESTAMPTZ,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`,
	`CREATE INDEX IF NOT EXISTS payments_status_paid_date_idx ON payments (status, paid_date)`,
	`CREATE INDEX IF NOT EXISTS payments_created_at_idx ON payments (created_at)`,
	`CREATE INDEX IF NOT EXISTS complaints_created_at_idx ON complaints (created_at)`,
	`CREATE INDEX IF NOT EXISTS tenants_created_at_idx ON tenants (created_at)`,
}

// Migrate creates the tables the service reads and writes
func (r *Repository) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
