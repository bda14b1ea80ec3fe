package utils

import (
	"errors"
	"fmt"
)

// Business errors returned by the reservation engine. Handlers match these
// with errors.Is to pick the HTTP status; anything else is treated as an
// infrastructure failure.
var (
	ErrInvalidTimeFormat = errors.New("invalid time format")
	ErrSlotConflict      = errors.New("slot conflict")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
)

func InvalidTimeFormatError(value string) error {
	return fmt.Errorf("%w: start time %q must be HH:MM with minutes 00, 15, 30 or 45", ErrInvalidTimeFormat, value)
}

func SlotConflictError(date, startTime string) error {
	return fmt.Errorf("%w: time slot %s is already reserved for %s", ErrSlotConflict, startTime, date)
}

func NotFoundError(id string) error {
	return fmt.Errorf("%w: reservation with ID %s", ErrNotFound, id)
}

func InvalidTransitionError(status, action string) error {
	return fmt.Errorf("%w: cannot %s reservation with status %s", ErrInvalidTransition, action, status)
}
