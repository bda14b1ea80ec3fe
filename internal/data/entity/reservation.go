package entity

import (
	"fmt"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	// Waiting for the reservation time
	StatusQueued ReservationStatus = "QUEUED"
	// Accepted by admin
	StatusAccepted ReservationStatus = "ACCEPTED"
	// Rejected by admin
	StatusRejected ReservationStatus = "REJECTED"
	// Cancelled by user or admin
	StatusCancelled ReservationStatus = "CANCELLED"
	// Call completed
	StatusSuccessful ReservationStatus = "SUCCESSFUL"
)

type ReservationAction string

const (
	ActionAccept     ReservationAction = "accept"
	ActionReject     ReservationAction = "reject"
	ActionCancel     ReservationAction = "cancel"
	ActionComplete   ReservationAction = "complete"
	ActionReschedule ReservationAction = "reschedule"
)

// transitions is the single source of truth for legal status changes.
// Reschedule keeps the current status, modelled as a self edge so the
// guard lives here instead of per operation. REJECTED, CANCELLED and
// SUCCESSFUL have no outgoing edges.
var transitions = map[ReservationStatus]map[ReservationAction]ReservationStatus{
	StatusQueued: {
		ActionAccept:     StatusAccepted,
		ActionReject:     StatusRejected,
		ActionCancel:     StatusCancelled,
		ActionComplete:   StatusSuccessful,
		ActionReschedule: StatusQueued,
	},
	StatusAccepted: {
		ActionCancel:     StatusCancelled,
		ActionComplete:   StatusSuccessful,
		ActionReschedule: StatusAccepted,
	},
}

// Transition returns the status that results from applying action to the
// current status, or an InvalidTransition error naming both.
func (s ReservationStatus) Transition(action ReservationAction) (ReservationStatus, error) {
	if next, ok := transitions[s][action]; ok {
		return next, nil
	}
	return s, utils.InvalidTransitionError(string(s), string(action))
}

type Reservation struct {
	ID                      uuid.UUID         `db:"id"`
	ReservationDate         string            `db:"reservation_date"`
	StartTime               string            `db:"start_time"`
	EndTime                 string            `db:"end_time"`
	Email                   string            `db:"email"`
	Phone                   string            `db:"phone"`
	PushNotificationKey     string            `db:"push_notification_key"`
	ReceiveEmail            bool              `db:"receive_email"`
	ReceiveSmsNotification  bool              `db:"receive_sms_notification"`
	ReceivePushNotification bool              `db:"receive_push_notification"`
	Status                  ReservationStatus `db:"status"`
	CreatedTime             time.Time         `db:"created_time"`
	UpdatedTime             time.Time         `db:"updated_time"`
}

// CallDuration is the fixed length of every call slot.
const CallDuration = 30

// ParseSlotTime parses an HH:MM slot time and returns it as minutes since
// midnight. Hours are two digits 00-23, minutes must sit on the
// quarter-hour grid.
func ParseSlotTime(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, utils.InvalidTimeFormatError(value)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if value[i] < '0' || value[i] > '9' {
			return 0, utils.InvalidTimeFormatError(value)
		}
	}

	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[3]-'0')*10 + int(value[4]-'0')

	if hour > 23 {
		return 0, utils.InvalidTimeFormatError(value)
	}

	switch minute {
	case 0, 15, 30, 45:
	default:
		return 0, utils.InvalidTimeFormatError(value)
	}

	return hour*60 + minute, nil
}

// CalculateEndTime derives the slot end time, 30 minutes after start.
// A slot may end exactly at midnight (rendered 00:00) but not cross into
// the next day, so the latest bookable start time is 23:30.
func CalculateEndTime(startTime string) (string, error) {
	startMinutes, err := ParseSlotTime(startTime)
	if err != nil {
		return "", err
	}

	endMinutes := startMinutes + CallDuration
	if endMinutes > 24*60 {
		return "", fmt.Errorf("%w: start time %s is too late for a %d-minute call", utils.ErrInvalidTimeFormat, startTime, CallDuration)
	}
	endMinutes %= 24 * 60

	return fmt.Sprintf("%02d:%02d", endMinutes/60, endMinutes%60), nil
}

// MinutesUntil returns the wall-clock minutes from now until startTime on
// the same day. Negative once the start time has passed. Seconds are
// ignored, matching the minute-granular reminder windows.
func MinutesUntil(startTime string, now time.Time) (int, error) {
	startMinutes, err := ParseSlotTime(startTime)
	if err != nil {
		return 0, err
	}
	return startMinutes - (now.Hour()*60 + now.Minute()), nil
}

// TodayDate returns the current date in the YYYY-MM-DD format used by
// reservationDate.
func TodayDate(now time.Time) string {
	return now.Format("2006-01-02")
}
