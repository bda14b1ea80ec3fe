package wire

import (
	"github.com/SinanUlusan/call-reservation-tool/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler) {
	r.Route("/admin", func(r chi.Router) {
		// GET /admin/reservations - full list for the admin view
		r.Get("/reservations", adminHandler.GetAllReservations)

		// GET /admin/reservations/pending - QUEUED only
		r.Get("/reservations/pending", adminHandler.GetPendingReservations)

		// PUT /admin/send-reminders - manual reminder scan
		r.Put("/send-reminders", adminHandler.SendReminders)
	})
}
