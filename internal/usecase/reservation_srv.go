package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/internal/dto/request"
	"github.com/SinanUlusan/call-reservation-tool/internal/dto/response"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetAllReservations(ctx context.Context) ([]*response.ReservationResponse, error)
	GetPendingReservations(ctx context.Context) ([]*response.ReservationResponse, error)
	GetReservationByID(ctx context.Context, id string) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, id, adminEmail string) (*response.ReservationResponse, error)
	UpdateReservationTime(ctx context.Context, id string, req *request.UpdateReservationTimeRequest) (*response.ReservationResponse, error)
	AdminAction(ctx context.Context, id, action string) (*response.ReservationResponse, error)
	MarkReservationSuccessful(ctx context.Context, id string) (*response.ReservationResponse, error)
}

type reservationService struct {
	repo     *repository.Repository
	notifier *notifier.Notifier
	log      *zap.Logger
}

func NewReservationService(repo *repository.Repository, notif *notifier.Notifier, log *zap.Logger) ReservationService {
	return &reservationService{
		repo:     repo,
		notifier: notif,
		log:      log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Derive end time; this also validates the quarter-hour grid
	endTime, err := entity.CalculateEndTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	// The slot is only blocked by a QUEUED reservation. An ACCEPTED one at
	// the same slot does not prevent a new booking request.
	existing, err := s.repo.Reservation.FindQueuedBySlot(ctx, req.ReservationDate, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if existing != nil {
		return nil, utils.SlotConflictError(req.ReservationDate, req.StartTime)
	}

	now := time.Now()
	reservation := &entity.Reservation{
		ID:                      uuid.New(),
		ReservationDate:         req.ReservationDate,
		StartTime:               req.StartTime,
		EndTime:                 endTime,
		Email:                   req.Email,
		Phone:                   req.Phone,
		PushNotificationKey:     req.PushNotificationKey,
		ReceiveEmail:            req.ReceiveEmail,
		ReceiveSmsNotification:  req.ReceiveSmsNotification,
		ReceivePushNotification: req.ReceivePushNotification,
		Status:                  entity.StatusQueued,
		CreatedTime:             now,
		UpdatedTime:             now,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("email", reservation.Email),
		zap.String("slot", reservation.ReservationDate+" "+reservation.StartTime),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) GetAllReservations(ctx context.Context) ([]*response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.ReservationsToResponse(reservations), nil
}

func (s *reservationService) GetPendingReservations(ctx context.Context) ([]*response.ReservationResponse, error) {
	reservations, err := s.repo.Reservation.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var pending []*entity.Reservation
	for _, reservation := range reservations {
		if reservation.Status == entity.StatusQueued {
			pending = append(pending, reservation)
		}
	}

	return response.ReservationsToResponse(pending), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, id string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) CancelReservation(ctx context.Context, id, adminEmail string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := reservation.Status.Transition(entity.ActionCancel)
	if err != nil {
		return nil, err
	}

	reservation.Status = next
	reservation.UpdatedTime = time.Now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	// Best effort: a failed notice must not fail the cancellation.
	subject, content := notifier.CancellationNotice(reservation.ID.String(), reservation.Email)
	if err := s.notifier.Email.SendEmail(ctx, adminEmail, subject, content); err != nil {
		s.log.Warn("Failed to send cancellation notice",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("admin_email", adminEmail),
		)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("email", reservation.Email),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) UpdateReservationTime(ctx context.Context, id string, req *request.UpdateReservationTimeRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update reservation time validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reservation, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := reservation.Status.Transition(entity.ActionReschedule); err != nil {
		return nil, err
	}

	endTime, err := entity.CalculateEndTime(req.StartTime)
	if err != nil {
		return nil, err
	}

	// Same-date conflict check, excluding the reservation being moved so a
	// reschedule to its own current time succeeds.
	existing, err := s.repo.Reservation.FindQueuedBySlot(ctx, reservation.ReservationDate, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("check slot availability: %w", err)
	}
	if existing != nil && existing.ID != reservation.ID {
		return nil, utils.SlotConflictError(reservation.ReservationDate, req.StartTime)
	}

	reservation.StartTime = req.StartTime
	reservation.EndTime = endTime
	reservation.UpdatedTime = time.Now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation time updated",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("start_time", req.StartTime),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) AdminAction(ctx context.Context, id, action string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	var transitionAction entity.ReservationAction
	switch action {
	case "accept":
		transitionAction = entity.ActionAccept
	case "reject":
		transitionAction = entity.ActionReject
	default:
		return nil, fmt.Errorf("validation failed: action must be accept or reject, got %q", action)
	}

	next, err := reservation.Status.Transition(transitionAction)
	if err != nil {
		return nil, err
	}

	reservation.Status = next
	reservation.UpdatedTime = time.Now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if next == entity.StatusRejected {
		subject, content := notifier.RejectionNotice(reservation.ID.String())
		if err := s.notifier.Email.SendEmail(ctx, reservation.Email, subject, content); err != nil {
			s.log.Warn("Failed to send rejection notice",
				zap.Error(err),
				zap.String("reservation_id", reservation.ID.String()),
			)
		}
	}

	s.log.Info("Admin action applied",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("action", action),
		zap.String("status", string(next)),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) MarkReservationSuccessful(ctx context.Context, id string) (*response.ReservationResponse, error) {
	reservation, err := s.loadReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := reservation.Status.Transition(entity.ActionComplete)
	if err != nil {
		return nil, err
	}

	reservation.Status = next
	reservation.UpdatedTime = time.Now()
	if err := s.repo.Reservation.Update(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation marked successful",
		zap.String("reservation_id", reservation.ID.String()),
	)

	return response.ReservationToResponse(reservation), nil
}

func (s *reservationService) loadReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		// An unparseable ID can never match a stored reservation.
		return nil, utils.NotFoundError(id)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, utils.NotFoundError(id)
	}

	return reservation, nil
}
