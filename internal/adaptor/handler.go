package adaptor

import (
	"github.com/SinanUlusan/call-reservation-tool/internal/usecase"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Reservation *ReservationHandler
	Admin       *AdminHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Reservation: NewReservationHandler(service.Reservation, log),
		Admin:       NewAdminHandler(service.Reservation, service.Reminder, log),
	}
}
