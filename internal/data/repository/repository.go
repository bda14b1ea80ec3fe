package repository

import (
	"github.com/SinanUlusan/call-reservation-tool/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Reservation  ReservationRepository
	ReminderMark ReminderMarkRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Reservation:  NewReservationRepository(db, log),
		ReminderMark: NewReminderMarkRepository(db, log),
	}
}
