package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The partial unique index enforces at most one QUEUED reservation per
// (date, start time) slot at the store level, so two concurrent bookings
// cannot both pass the conflict check.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS reservations (
	id UUID PRIMARY KEY,
	reservation_date VARCHAR(10) NOT NULL,
	start_time VARCHAR(5) NOT NULL,
	end_time VARCHAR(5) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	push_notification_key VARCHAR(255) NOT NULL,
	receive_email BOOLEAN NOT NULL DEFAULT false,
	receive_sms_notification BOOLEAN NOT NULL DEFAULT false,
	receive_push_notification BOOLEAN NOT NULL DEFAULT false,
	status VARCHAR(20) NOT NULL DEFAULT 'QUEUED',
	created_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_time TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_reservations_queued_slot
	ON reservations (reservation_date, start_time) WHERE status = 'QUEUED';

CREATE INDEX IF NOT EXISTS idx_reservations_date ON reservations (reservation_date);
CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations (status);
CREATE INDEX IF NOT EXISTS idx_reservations_email ON reservations (email);

CREATE TABLE IF NOT EXISTS reminder_marks (
	reservation_id UUID NOT NULL REFERENCES reservations(id),
	channel VARCHAR(10) NOT NULL,
	marked_time TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (reservation_id, channel)
);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
