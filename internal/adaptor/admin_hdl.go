package adaptor

import (
	"net/http"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/usecase"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	reservations usecase.ReservationService
	reminders    usecase.ReminderService
	log          *zap.Logger
}

func NewAdminHandler(reservations usecase.ReservationService, reminders usecase.ReminderService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		reservations: reservations,
		reminders:    reminders,
		log:          log.With(zap.String("handler", "admin")),
	}
}

// GetAllReservations handles GET /admin/reservations
func (h *AdminHandler) GetAllReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.GetAllReservations(r.Context())
	if err != nil {
		h.log.Error("Failed to get reservations", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseRecords(w, reservations)
}

// GetPendingReservations handles GET /admin/reservations/pending
func (h *AdminHandler) GetPendingReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.reservations.GetPendingReservations(r.Context())
	if err != nil {
		h.log.Error("Failed to get pending reservations", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseRecords(w, reservations)
}

// SendReminders handles PUT /admin/send-reminders, a manual trigger for
// the same scan the scheduler runs.
func (h *AdminHandler) SendReminders(w http.ResponseWriter, r *http.Request) {
	if err := h.reminders.SendReminderNotifications(r.Context(), time.Now()); err != nil {
		h.log.Error("Failed to send reminders", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseMessage(w, "Reminder notifications sent successfully")
}
