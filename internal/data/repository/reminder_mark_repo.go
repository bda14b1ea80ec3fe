package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderMarkRepository records which reminder channels already fired for
// a reservation, so overlapping or drifting scans cannot send the same
// reminder twice.
type ReminderMarkRepository interface {
	// TryMark claims the (reservation, channel) pair. It returns true when
	// this call made the claim and false when the reminder was already
	// marked by an earlier scan.
	TryMark(ctx context.Context, reservationID uuid.UUID, channel string) (bool, error)
}

type reminderMarkRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReminderMarkRepository(db database.PgxIface, log *zap.Logger) ReminderMarkRepository {
	return &reminderMarkRepository{
		db:  db,
		log: log.With(zap.String("repository", "reminder_mark")),
	}
}

func (r *reminderMarkRepository) TryMark(ctx context.Context, reservationID uuid.UUID, channel string) (bool, error) {
	query := `
		INSERT INTO reminder_marks (reservation_id, channel, marked_time)
		VALUES ($1, $2, $3)
		ON CONFLICT (reservation_id, channel) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query, reservationID, channel, time.Now())
	if err != nil {
		r.log.Error("Failed to mark reminder",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
			zap.String("channel", channel),
		)
		return false, fmt.Errorf("mark reminder %s/%s: %w", reservationID.String(), channel, err)
	}

	return result.RowsAffected() == 1, nil
}
