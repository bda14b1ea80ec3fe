package request

type CreateReservationRequest struct {
	ReservationDate         string `json:"reservationDate" validate:"required,datetime=2006-01-02"`
	StartTime               string `json:"startTime" validate:"required"`
	Email                   string `json:"email" validate:"required,email"`
	Phone                   string `json:"phone" validate:"required"`
	PushNotificationKey     string `json:"pushNotificationKey" validate:"required"`
	ReceiveEmail            bool   `json:"receiveEmail"`
	ReceiveSmsNotification  bool   `json:"receiveSmsNotification"`
	ReceivePushNotification bool   `json:"receivePushNotification"`
}

type UpdateReservationTimeRequest struct {
	StartTime string `json:"startTime" validate:"required"`
}

type AdminActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept reject"`
}

type CancelReservationRequest struct {
	AdminEmail string `json:"adminEmail" validate:"required,email"`
}
