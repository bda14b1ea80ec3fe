package usecase

import (
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"

	"go.uber.org/zap"
)

type Service struct {
	Reservation ReservationService
	Reminder    ReminderService
}

func NewService(repo *repository.Repository, notif *notifier.Notifier, log *zap.Logger) *Service {
	return &Service{
		Reservation: NewReservationService(repo, notif, log),
		Reminder:    NewReminderService(repo, notif, log),
	}
}
