package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"

	"go.uber.org/zap"
)

// Reminder lead times in minutes per channel.
const (
	EmailLeadMinutes = 10
	SmsLeadMinutes   = 5
	PushLeadMinutes  = 1
)

const (
	ChannelEmail = "email"
	ChannelSms   = "sms"
	ChannelPush  = "push"
)

// ReminderService scans today's queued reservations and sends the
// reminders that are due at the given instant. The caller drives the
// cadence; one scan per minute matches the lead-time windows.
type ReminderService interface {
	SendReminderNotifications(ctx context.Context, now time.Time) error
}

type reminderService struct {
	repo     *repository.Repository
	notifier *notifier.Notifier
	log      *zap.Logger
}

func NewReminderService(repo *repository.Repository, notif *notifier.Notifier, log *zap.Logger) ReminderService {
	return &reminderService{
		repo:     repo,
		notifier: notif,
		log:      log.With(zap.String("service", "reminder")),
	}
}

func (s *reminderService) SendReminderNotifications(ctx context.Context, now time.Time) error {
	today := entity.TodayDate(now)

	reservations, err := s.repo.Reservation.FindQueuedByDate(ctx, today)
	if err != nil {
		return fmt.Errorf("load queued reservations for %s: %w", today, err)
	}

	sent := 0
	for _, reservation := range reservations {
		minutesUntilCall, err := entity.MinutesUntil(reservation.StartTime, now)
		if err != nil {
			s.log.Error("Skipping reservation with unparseable start time",
				zap.Error(err),
				zap.String("reservation_id", reservation.ID.String()),
			)
			continue
		}

		if reservation.ReceiveEmail && minutesUntilCall == EmailLeadMinutes {
			if s.claim(ctx, reservation, ChannelEmail) {
				subject := fmt.Sprintf("Call Reminder - %d minutes", EmailLeadMinutes)
				body := notifier.CallReminder(reservation.StartTime, EmailLeadMinutes)
				if err := s.notifier.Email.SendEmail(ctx, reservation.Email, subject, body); err != nil {
					s.log.Warn("Failed to send email reminder",
						zap.Error(err),
						zap.String("reservation_id", reservation.ID.String()),
					)
				} else {
					sent++
				}
			}
		}

		if reservation.ReceiveSmsNotification && minutesUntilCall == SmsLeadMinutes {
			if s.claim(ctx, reservation, ChannelSms) {
				body := notifier.CallReminder(reservation.StartTime, SmsLeadMinutes)
				if err := s.notifier.Sms.SendSms(ctx, reservation.Phone, body); err != nil {
					s.log.Warn("Failed to send SMS reminder",
						zap.Error(err),
						zap.String("reservation_id", reservation.ID.String()),
					)
				} else {
					sent++
				}
			}
		}

		if reservation.ReceivePushNotification && minutesUntilCall == PushLeadMinutes {
			if s.claim(ctx, reservation, ChannelPush) {
				body := notifier.CallReminder(reservation.StartTime, PushLeadMinutes)
				if err := s.notifier.Push.SendPush(ctx, reservation.PushNotificationKey, "Call Reminder", body); err != nil {
					s.log.Warn("Failed to send push reminder",
						zap.Error(err),
						zap.String("reservation_id", reservation.ID.String()),
					)
				} else {
					sent++
				}
			}
		}
	}

	if sent > 0 {
		s.log.Info("Reminder scan finished",
			zap.String("date", today),
			zap.Int("scanned", len(reservations)),
			zap.Int("sent", sent),
		)
	}

	return nil
}

// claim marks the (reservation, channel) pair so overlapping scans send at
// most one reminder per channel. A marker-store failure skips the send
// rather than risking a duplicate.
func (s *reminderService) claim(ctx context.Context, reservation *entity.Reservation, channel string) bool {
	claimed, err := s.repo.ReminderMark.TryMark(ctx, reservation.ID, channel)
	if err != nil {
		s.log.Error("Failed to claim reminder",
			zap.Error(err),
			zap.String("reservation_id", reservation.ID.String()),
			zap.String("channel", channel),
		)
		return false
	}
	return claimed
}
