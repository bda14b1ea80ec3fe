package response

import (
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
)

type ReservationResponse struct {
	ID                  string                   `json:"id"`
	ReservationDate     string                   `json:"reservationDate"`
	StartTime           string                   `json:"startTime"`
	EndTime             string                   `json:"endTime"`
	Email               string                   `json:"email"`
	Phone               string                   `json:"phone"`
	PushNotificationKey string                   `json:"pushNotificationKey"`
	Status              entity.ReservationStatus `json:"status"`
	CreatedTime         string                   `json:"createdTime"`
}

func ReservationToResponse(reservation *entity.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                  reservation.ID.String(),
		ReservationDate:     reservation.ReservationDate,
		StartTime:           reservation.StartTime,
		EndTime:             reservation.EndTime,
		Email:               reservation.Email,
		Phone:               reservation.Phone,
		PushNotificationKey: reservation.PushNotificationKey,
		Status:              reservation.Status,
		CreatedTime:         reservation.CreatedTime.UTC().Format(time.RFC3339),
	}
}

func ReservationsToResponse(reservations []*entity.Reservation) []*ReservationResponse {
	responses := make([]*ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		responses[i] = ReservationToResponse(reservation)
	}
	return responses
}
