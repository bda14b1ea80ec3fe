package scheduler

import (
	"context"
	"time"

	"github.com/SinanUlusan/call-reservation-tool/internal/usecase"

	"go.uber.org/zap"
)

// Scheduler drives the reminder scan on a fixed cadence. The reminder
// windows are minute-granular, so the interval should stay at one minute.
type Scheduler struct {
	Interval time.Duration
	Reminder usecase.ReminderService
	Log      *zap.Logger
}

func New(interval time.Duration, reminder usecase.ReminderService, log *zap.Logger) *Scheduler {
	return &Scheduler{
		Interval: interval,
		Reminder: reminder,
		Log:      log.With(zap.String("component", "scheduler")),
	}
}

// Run blocks until ctx is cancelled, scanning once immediately and then on
// every tick.
func (s *Scheduler) Run(ctx context.Context) error {
	t := time.NewTicker(s.Interval)
	defer t.Stop()

	s.Log.Info("Reminder scheduler started", zap.Duration("interval", s.Interval))

	// kick immediately
	s.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			s.Log.Info("Reminder scheduler stopped")
			return ctx.Err()
		case <-t.C:
			s.scan(ctx)
		}
	}
}

func (s *Scheduler) scan(ctx context.Context) {
	if err := s.Reminder.SendReminderNotifications(ctx, time.Now()); err != nil {
		s.Log.Error("Reminder scan failed", zap.Error(err))
	}
}
