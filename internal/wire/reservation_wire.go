package wire

import (
	"github.com/SinanUlusan/call-reservation-tool/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/reservation", func(r chi.Router) {
		// POST /reservation - book a call slot
		r.Post("/", reservationHandler.CreateReservation)

		// GET /reservation - list all reservations, newest first
		r.Get("/", reservationHandler.GetAllReservations)

		// GET /reservation/{id} - single reservation
		r.Get("/{id}", reservationHandler.GetReservationByID)

		// PUT /reservation/{id}/cancel - cancel by user
		r.Put("/{id}/cancel", reservationHandler.CancelReservation)

		// PUT /reservation/{id}/time - reschedule
		r.Put("/{id}/time", reservationHandler.UpdateReservationTime)

		// PUT /reservation/{id}/admin-action - accept or reject
		r.Put("/{id}/admin-action", reservationHandler.AdminAction)

		// PUT /reservation/{id}/successful - call completed
		r.Put("/{id}/successful", reservationHandler.MarkReservationSuccessful)
	})
}
