// Package notifier holds the outbound notification collaborators. The
// engine and scanner only see the three sender interfaces; the bundled
// implementations log the message instead of talking to a real provider.
// Delivery failures are logged by the caller and never fail the operation
// that triggered them.
package notifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type EmailSender interface {
	SendEmail(ctx context.Context, receiver, subject, content string) error
}

type SmsSender interface {
	SendSms(ctx context.Context, receiver, content string) error
}

type PushSender interface {
	SendPush(ctx context.Context, pushNotificationKey, title, content string) error
}

// Notifier bundles the three channels for injection.
type Notifier struct {
	Email EmailSender
	Sms   SmsSender
	Push  PushSender
}

func NewNotifier(log *zap.Logger) *Notifier {
	return &Notifier{
		Email: NewLogEmailSender(log),
		Sms:   NewLogSmsSender(log),
		Push:  NewLogPushSender(log),
	}
}

type logEmailSender struct {
	log *zap.Logger
}

// NewLogEmailSender returns an EmailSender that logs the message.
// TODO: integrate with an actual email provider (SendGrid, AWS SES).
func NewLogEmailSender(log *zap.Logger) EmailSender {
	return &logEmailSender{log: log.With(zap.String("notifier", "email"))}
}

func (s *logEmailSender) SendEmail(ctx context.Context, receiver, subject, content string) error {
	s.log.Info("Send email",
		zap.String("receiver", receiver),
		zap.String("subject", subject),
		zap.String("content", content),
	)
	return nil
}

type logSmsSender struct {
	log *zap.Logger
}

// NewLogSmsSender returns an SmsSender that logs the message.
// TODO: integrate with an actual SMS provider (Twilio, AWS SNS).
func NewLogSmsSender(log *zap.Logger) SmsSender {
	return &logSmsSender{log: log.With(zap.String("notifier", "sms"))}
}

func (s *logSmsSender) SendSms(ctx context.Context, receiver, content string) error {
	s.log.Info("Send SMS",
		zap.String("receiver", receiver),
		zap.String("content", content),
	)
	return nil
}

type logPushSender struct {
	log *zap.Logger
}

// NewLogPushSender returns a PushSender that logs the message.
func NewLogPushSender(log *zap.Logger) PushSender {
	return &logPushSender{log: log.With(zap.String("notifier", "push"))}
}

func (s *logPushSender) SendPush(ctx context.Context, pushNotificationKey, title, content string) error {
	s.log.Info("Send push notification",
		zap.String("push_notification_key", pushNotificationKey),
		zap.String("title", title),
		zap.String("content", content),
	)
	return nil
}

// CancellationNotice is the email sent to the admin when a user cancels.
func CancellationNotice(reservationID, userEmail string) (subject, content string) {
	subject = "Reservation Cancellation Notification"
	content = fmt.Sprintf(
		"A reservation has been cancelled by the user.\n\nReservation ID: %s\nUser Email: %s\nCancellation Time: %s",
		reservationID, userEmail, time.Now().UTC().Format(time.RFC3339),
	)
	return subject, content
}

// RejectionNotice is the email sent to the user when the admin rejects.
func RejectionNotice(reservationID string) (subject, content string) {
	subject = "Reservation Rejected"
	content = fmt.Sprintf(
		"Your reservation has been rejected by our support team.\n\nReservation ID: %s\nRejection Time: %s\n\nPlease contact support if you have any questions.",
		reservationID, time.Now().UTC().Format(time.RFC3339),
	)
	return subject, content
}

// CallReminder composes the reminder body for any channel.
func CallReminder(startTime string, minutesBefore int) string {
	if minutesBefore == 1 {
		return fmt.Sprintf("Your call is scheduled in 1 minute at %s. Please be ready!", startTime)
	}
	return fmt.Sprintf("Your call is scheduled in %d minutes at %s. Please be ready!", minutesBefore, startTime)
}
