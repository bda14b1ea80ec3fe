package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
	"github.com/SinanUlusan/call-reservation-tool/internal/dto/request"
	"github.com/SinanUlusan/call-reservation-tool/internal/dto/response"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/google/uuid"
)

func bookingRequest(date, startTime string) *request.CreateReservationRequest {
	return &request.CreateReservationRequest{
		ReservationDate:         date,
		StartTime:               startTime,
		Email:                   "user@example.com",
		Phone:                   "+1234567890",
		PushNotificationKey:     "user-push-key-123",
		ReceiveEmail:            true,
		ReceiveSmsNotification:  true,
		ReceivePushNotification: true,
	}
}

func mustBook(t *testing.T, env *testEnv, date, startTime string) *response.ReservationResponse {
	t.Helper()
	record, err := env.service.Reservation.CreateReservation(context.Background(), bookingRequest(date, startTime))
	if err != nil {
		t.Fatalf("CreateReservation(%s %s): unexpected error %v", date, startTime, err)
	}
	return record
}

func seed(t *testing.T, env *testEnv, date, startTime string, status entity.ReservationStatus) *entity.Reservation {
	t.Helper()
	endTime, err := entity.CalculateEndTime(startTime)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	reservation := &entity.Reservation{
		ID:              uuid.New(),
		ReservationDate: date,
		StartTime:       startTime,
		EndTime:         endTime,
		Email:           "owner@example.com",
		Phone:           "+1234567890",
		Status:          status,
		CreatedTime:     time.Now(),
		UpdatedTime:     time.Now(),
	}
	if err := env.reservations.Create(context.Background(), reservation); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return reservation
}

func TestCreateReservation(t *testing.T) {
	env := newTestEnv()

	record := mustBook(t, env, "2024-01-15", "13:15")

	if record.EndTime != "13:45" {
		t.Errorf("EndTime = %q, want 13:45", record.EndTime)
	}
	if record.Status != entity.StatusQueued {
		t.Errorf("Status = %q, want QUEUED", record.Status)
	}
	if record.ReservationDate != "2024-01-15" {
		t.Errorf("ReservationDate = %q", record.ReservationDate)
	}
	if _, err := time.Parse(time.RFC3339, record.CreatedTime); err != nil {
		t.Errorf("CreatedTime %q is not RFC3339: %v", record.CreatedTime, err)
	}
}

func TestCreateReservationSlotConflict(t *testing.T) {
	env := newTestEnv()

	mustBook(t, env, "2024-01-15", "13:15")

	_, err := env.service.Reservation.CreateReservation(context.Background(), bookingRequest("2024-01-15", "13:15"))
	if !errors.Is(err, utils.ErrSlotConflict) {
		t.Fatalf("second booking: want ErrSlotConflict, got %v", err)
	}
}

func TestCreateReservationOverAcceptedSlot(t *testing.T) {
	env := newTestEnv()

	// Only QUEUED reservations block a slot. An ACCEPTED reservation at
	// the same slot does not prevent a new booking.
	seed(t, env, "2024-01-15", "13:15", entity.StatusAccepted)

	if _, err := env.service.Reservation.CreateReservation(context.Background(), bookingRequest("2024-01-15", "13:15")); err != nil {
		t.Fatalf("booking over ACCEPTED slot: unexpected error %v", err)
	}
}

func TestCreateReservationDifferentSlotsNoConflict(t *testing.T) {
	env := newTestEnv()

	mustBook(t, env, "2024-01-15", "13:15")
	mustBook(t, env, "2024-01-15", "13:30")
	mustBook(t, env, "2024-01-16", "13:15")
}

func TestCreateReservationInvalidTime(t *testing.T) {
	env := newTestEnv()

	for _, startTime := range []string{"13:10", "9:15", "25:00", "1315", "23:45"} {
		_, err := env.service.Reservation.CreateReservation(context.Background(), bookingRequest("2024-01-15", startTime))
		if !errors.Is(err, utils.ErrInvalidTimeFormat) {
			t.Errorf("start time %q: want ErrInvalidTimeFormat, got %v", startTime, err)
		}
	}
}

func TestCreateReservationValidation(t *testing.T) {
	env := newTestEnv()

	req := bookingRequest("2024-01-15", "13:15")
	req.Email = "not-an-email"

	_, err := env.service.Reservation.CreateReservation(context.Background(), req)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestGetReservationByIDNotFound(t *testing.T) {
	env := newTestEnv()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		_, err := env.service.Reservation.GetReservationByID(context.Background(), id)
		if !errors.Is(err, utils.ErrNotFound) {
			t.Errorf("GetReservationByID(%q): want ErrNotFound, got %v", id, err)
		}
	}
}

func TestGetAllReservationsOrder(t *testing.T) {
	env := newTestEnv()

	older := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)
	older.CreatedTime = time.Now().Add(-time.Hour)
	if err := env.reservations.Update(context.Background(), older); err != nil {
		t.Fatal(err)
	}
	newer := seed(t, env, "2024-01-15", "14:00", entity.StatusQueued)

	records, err := env.service.Reservation.GetAllReservations(context.Background())
	if err != nil {
		t.Fatalf("GetAllReservations: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].ID != newer.ID.String() || records[1].ID != older.ID.String() {
		t.Errorf("records not ordered by created time descending")
	}
}

func TestGetPendingReservations(t *testing.T) {
	env := newTestEnv()

	seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)
	seed(t, env, "2024-01-15", "14:00", entity.StatusAccepted)
	seed(t, env, "2024-01-15", "15:00", entity.StatusRejected)

	records, err := env.service.Reservation.GetPendingReservations(context.Background())
	if err != nil {
		t.Fatalf("GetPendingReservations: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d pending records, want 1", len(records))
	}
	if records[0].Status != entity.StatusQueued {
		t.Errorf("pending record has status %q", records[0].Status)
	}
}

func TestCancelReservation(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	record, err := env.service.Reservation.CancelReservation(context.Background(), reservation.ID.String(), "admin@example.com")
	if err != nil {
		t.Fatalf("CancelReservation: %v", err)
	}
	if record.Status != entity.StatusCancelled {
		t.Errorf("Status = %q, want CANCELLED", record.Status)
	}

	if len(env.email.sent) != 1 {
		t.Fatalf("got %d cancellation notices, want 1", len(env.email.sent))
	}
	notice := env.email.sent[0]
	if notice.receiver != "admin@example.com" {
		t.Errorf("notice receiver = %q", notice.receiver)
	}
	if !strings.Contains(notice.content, reservation.ID.String()) {
		t.Errorf("notice is missing the reservation ID")
	}
	if !strings.Contains(notice.content, reservation.Email) {
		t.Errorf("notice is missing the owner email")
	}
}

func TestCancelAcceptedReservation(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusAccepted)

	record, err := env.service.Reservation.CancelReservation(context.Background(), reservation.ID.String(), "admin@example.com")
	if err != nil {
		t.Fatalf("CancelReservation on ACCEPTED: %v", err)
	}
	if record.Status != entity.StatusCancelled {
		t.Errorf("Status = %q, want CANCELLED", record.Status)
	}
}

func TestCancelTerminalReservation(t *testing.T) {
	env := newTestEnv()

	for _, status := range []entity.ReservationStatus{entity.StatusRejected, entity.StatusCancelled, entity.StatusSuccessful} {
		reservation := seed(t, env, "2024-01-15", "13:15", status)

		_, err := env.service.Reservation.CancelReservation(context.Background(), reservation.ID.String(), "admin@example.com")
		if !errors.Is(err, utils.ErrInvalidTransition) {
			t.Errorf("cancel with status %s: want ErrInvalidTransition, got %v", status, err)
		}

		// Status must not change on a refused transition
		stored, _ := env.reservations.FindByID(context.Background(), reservation.ID)
		if stored.Status != status {
			t.Errorf("status changed from %s to %s on refused cancel", status, stored.Status)
		}
	}
}

func TestCancelNotifierFailureDoesNotFailOperation(t *testing.T) {
	env := newTestEnv()
	env.email.err = errors.New("smtp down")

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	record, err := env.service.Reservation.CancelReservation(context.Background(), reservation.ID.String(), "admin@example.com")
	if err != nil {
		t.Fatalf("CancelReservation with failing notifier: %v", err)
	}
	if record.Status != entity.StatusCancelled {
		t.Errorf("Status = %q, want CANCELLED", record.Status)
	}
}

func TestUpdateReservationTime(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	record, err := env.service.Reservation.UpdateReservationTime(context.Background(), reservation.ID.String(),
		&request.UpdateReservationTimeRequest{StartTime: "14:00"})
	if err != nil {
		t.Fatalf("UpdateReservationTime: %v", err)
	}
	if record.StartTime != "14:00" || record.EndTime != "14:30" {
		t.Errorf("times = %s-%s, want 14:00-14:30", record.StartTime, record.EndTime)
	}
}

func TestUpdateReservationTimeConflict(t *testing.T) {
	env := newTestEnv()

	seed(t, env, "2024-01-15", "14:00", entity.StatusQueued)
	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	_, err := env.service.Reservation.UpdateReservationTime(context.Background(), reservation.ID.String(),
		&request.UpdateReservationTimeRequest{StartTime: "14:00"})
	if !errors.Is(err, utils.ErrSlotConflict) {
		t.Fatalf("reschedule onto taken slot: want ErrSlotConflict, got %v", err)
	}
}

func TestUpdateReservationTimeSelfExclusion(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	// Rescheduling to its own current time is not a conflict.
	record, err := env.service.Reservation.UpdateReservationTime(context.Background(), reservation.ID.String(),
		&request.UpdateReservationTimeRequest{StartTime: "13:15"})
	if err != nil {
		t.Fatalf("reschedule to own slot: %v", err)
	}
	if record.StartTime != "13:15" {
		t.Errorf("StartTime = %q", record.StartTime)
	}
}

func TestUpdateReservationTimeTerminal(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusSuccessful)

	_, err := env.service.Reservation.UpdateReservationTime(context.Background(), reservation.ID.String(),
		&request.UpdateReservationTimeRequest{StartTime: "14:00"})
	if !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("reschedule SUCCESSFUL: want ErrInvalidTransition, got %v", err)
	}
}

func TestAdminActionAccept(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	record, err := env.service.Reservation.AdminAction(context.Background(), reservation.ID.String(), "accept")
	if err != nil {
		t.Fatalf("AdminAction accept: %v", err)
	}
	if record.Status != entity.StatusAccepted {
		t.Errorf("Status = %q, want ACCEPTED", record.Status)
	}
	if len(env.email.sent) != 0 {
		t.Errorf("accept sent %d notices, want 0", len(env.email.sent))
	}
}

func TestAdminActionReject(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusQueued)

	record, err := env.service.Reservation.AdminAction(context.Background(), reservation.ID.String(), "reject")
	if err != nil {
		t.Fatalf("AdminAction reject: %v", err)
	}
	if record.Status != entity.StatusRejected {
		t.Errorf("Status = %q, want REJECTED", record.Status)
	}

	if len(env.email.sent) != 1 {
		t.Fatalf("got %d rejection notices, want 1", len(env.email.sent))
	}
	notice := env.email.sent[0]
	if notice.receiver != reservation.Email {
		t.Errorf("notice receiver = %q, want owner %q", notice.receiver, reservation.Email)
	}
	if !strings.Contains(notice.content, reservation.ID.String()) {
		t.Errorf("notice is missing the reservation ID")
	}
}

func TestAdminActionOnNonQueued(t *testing.T) {
	env := newTestEnv()

	for _, status := range []entity.ReservationStatus{entity.StatusAccepted, entity.StatusRejected, entity.StatusCancelled, entity.StatusSuccessful} {
		reservation := seed(t, env, "2024-01-15", "13:15", status)

		for _, action := range []string{"accept", "reject"} {
			_, err := env.service.Reservation.AdminAction(context.Background(), reservation.ID.String(), action)
			if !errors.Is(err, utils.ErrInvalidTransition) {
				t.Errorf("%s with status %s: want ErrInvalidTransition, got %v", action, status, err)
			}
		}
	}
}

func TestMarkReservationSuccessful(t *testing.T) {
	env := newTestEnv()

	for _, status := range []entity.ReservationStatus{entity.StatusQueued, entity.StatusAccepted} {
		reservation := seed(t, env, "2024-01-15", "13:15", status)

		record, err := env.service.Reservation.MarkReservationSuccessful(context.Background(), reservation.ID.String())
		if err != nil {
			t.Fatalf("MarkReservationSuccessful from %s: %v", status, err)
		}
		if record.Status != entity.StatusSuccessful {
			t.Errorf("Status = %q, want SUCCESSFUL", record.Status)
		}
	}
}

func TestMarkReservationSuccessfulTerminal(t *testing.T) {
	env := newTestEnv()

	reservation := seed(t, env, "2024-01-15", "13:15", entity.StatusCancelled)

	_, err := env.service.Reservation.MarkReservationSuccessful(context.Background(), reservation.ID.String())
	if !errors.Is(err, utils.ErrInvalidTransition) {
		t.Fatalf("complete CANCELLED: want ErrInvalidTransition, got %v", err)
	}
}

// Pins the end-to-end scenario: book 13:15, conflicting rebook, reject
// with a notice to the owner.
func TestBookingLifecycleScenario(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	record := mustBook(t, env, "2024-01-15", "13:15")
	if record.EndTime != "13:45" || record.Status != entity.StatusQueued {
		t.Fatalf("booked record = %s-%s %s", record.StartTime, record.EndTime, record.Status)
	}

	if _, err := env.service.Reservation.CreateReservation(ctx, bookingRequest("2024-01-15", "13:15")); !errors.Is(err, utils.ErrSlotConflict) {
		t.Fatalf("duplicate booking: want ErrSlotConflict, got %v", err)
	}

	rejected, err := env.service.Reservation.AdminAction(ctx, record.ID, "reject")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != entity.StatusRejected {
		t.Errorf("Status = %q, want REJECTED", rejected.Status)
	}
	if len(env.email.sent) != 1 || env.email.sent[0].receiver != "user@example.com" {
		t.Errorf("expected exactly one rejection notice to the owner, got %+v", env.email.sent)
	}
}
