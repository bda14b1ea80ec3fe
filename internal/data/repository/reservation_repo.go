package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
	"github.com/SinanUlusan/call-reservation-tool/pkg/database"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const reservationColumns = `id, reservation_date, start_time, end_time, email, phone, push_notification_key,
	receive_email, receive_sms_notification, receive_push_notification, status, created_time, updated_time`

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindAll(ctx context.Context) ([]*entity.Reservation, error)

	// Business queries
	FindQueuedBySlot(ctx context.Context, reservationDate, startTime string) (*entity.Reservation, error)
	FindQueuedByDate(ctx context.Context, reservationDate string) ([]*entity.Reservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.ReservationDate,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Email,
		reservation.Phone,
		reservation.PushNotificationKey,
		reservation.ReceiveEmail,
		reservation.ReceiveSmsNotification,
		reservation.ReceivePushNotification,
		reservation.Status,
		reservation.CreatedTime,
		reservation.UpdatedTime,
	)

	if err != nil {
		// The partial unique index on (reservation_date, start_time) for
		// QUEUED rows closes the conflict-check/insert race. A concurrent
		// insert surfaces here as a unique violation, not an I/O failure.
		if isUniqueViolation(err) {
			return utils.SlotConflictError(reservation.ReservationDate, reservation.StartTime)
		}
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("slot", reservation.ReservationDate+" "+reservation.StartTime),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.ID.String(), err)
	}

	return nil
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET start_time = $2, end_time = $3, status = $4, updated_time = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
		reservation.UpdatedTime,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return utils.SlotConflictError(reservation.ReservationDate, reservation.StartTime)
		}
		r.log.Error("Failed to update reservation",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
		)
		return fmt.Errorf("update reservation %s: %w", reservation.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return utils.NotFoundError(reservation.ID.String())
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1
	`

	reservation, err := r.scanOne(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY created_time DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all reservations", zap.Error(err))
		return nil, fmt.Errorf("find all reservations: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *reservationRepository) FindQueuedBySlot(ctx context.Context, reservationDate, startTime string) (*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE reservation_date = $1 AND start_time = $2 AND status = $3
	`

	reservation, err := r.scanOne(r.db.QueryRow(ctx, query, reservationDate, startTime, entity.StatusQueued))
	if err != nil {
		r.log.Error("Failed to find queued reservation by slot",
			zap.Error(err),
			zap.String("slot", reservationDate+" "+startTime),
		)
		return nil, fmt.Errorf("find queued reservation at %s %s: %w", reservationDate, startTime, err)
	}

	return reservation, nil
}

func (r *reservationRepository) FindQueuedByDate(ctx context.Context, reservationDate string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE reservation_date = $1 AND status = $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, reservationDate, entity.StatusQueued)
	if err != nil {
		r.log.Error("Failed to find queued reservations by date",
			zap.Error(err),
			zap.String("reservation_date", reservationDate),
		)
		return nil, fmt.Errorf("find queued reservations for %s: %w", reservationDate, err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *reservationRepository) scanOne(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.ReservationDate,
		&reservation.StartTime,
		&reservation.EndTime,
		&reservation.Email,
		&reservation.Phone,
		&reservation.PushNotificationKey,
		&reservation.ReceiveEmail,
		&reservation.ReceiveSmsNotification,
		&reservation.ReceivePushNotification,
		&reservation.Status,
		&reservation.CreatedTime,
		&reservation.UpdatedTime,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}

func (r *reservationRepository) scanAll(rows pgx.Rows) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.ReservationDate,
			&reservation.StartTime,
			&reservation.EndTime,
			&reservation.Email,
			&reservation.Phone,
			&reservation.PushNotificationKey,
			&reservation.ReceiveEmail,
			&reservation.ReceiveSmsNotification,
			&reservation.ReceivePushNotification,
			&reservation.Status,
			&reservation.CreatedTime,
			&reservation.UpdatedTime,
		)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
