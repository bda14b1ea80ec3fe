package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/SinanUlusan/call-reservation-tool/internal/data/entity"
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory doubles for the store and the notifiers. They implement the
// same interfaces the pgx repositories and log notifiers do, including the
// QUEUED-only slot uniqueness the partial index enforces.

type fakeReservationRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{items: make(map[uuid.UUID]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reservation.Status == entity.StatusQueued {
		for _, existing := range f.items {
			if existing.Status == entity.StatusQueued &&
				existing.ReservationDate == reservation.ReservationDate &&
				existing.StartTime == reservation.StartTime {
				return utils.SlotConflictError(reservation.ReservationDate, reservation.StartTime)
			}
		}
	}

	stored := *reservation
	f.items[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, reservation *entity.Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.items[reservation.ID]; !ok {
		return utils.NotFoundError(reservation.ID.String())
	}

	stored := *reservation
	f.items[reservation.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if reservation, ok := f.items[id]; ok {
		copied := *reservation
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindAll(ctx context.Context) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var reservations []*entity.Reservation
	for _, reservation := range f.items {
		copied := *reservation
		reservations = append(reservations, &copied)
	}

	sort.Slice(reservations, func(i, j int) bool {
		return reservations[i].CreatedTime.After(reservations[j].CreatedTime)
	})

	return reservations, nil
}

func (f *fakeReservationRepo) FindQueuedBySlot(ctx context.Context, reservationDate, startTime string) (*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, reservation := range f.items {
		if reservation.Status == entity.StatusQueued &&
			reservation.ReservationDate == reservationDate &&
			reservation.StartTime == startTime {
			copied := *reservation
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindQueuedByDate(ctx context.Context, reservationDate string) ([]*entity.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var reservations []*entity.Reservation
	for _, reservation := range f.items {
		if reservation.Status == entity.StatusQueued && reservation.ReservationDate == reservationDate {
			copied := *reservation
			reservations = append(reservations, &copied)
		}
	}
	return reservations, nil
}

type fakeReminderMarkRepo struct {
	mu    sync.Mutex
	marks map[string]bool
	err   error
}

func newFakeReminderMarkRepo() *fakeReminderMarkRepo {
	return &fakeReminderMarkRepo{marks: make(map[string]bool)}
}

func (f *fakeReminderMarkRepo) TryMark(ctx context.Context, reservationID uuid.UUID, channel string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return false, f.err
	}

	key := reservationID.String() + "/" + channel
	if f.marks[key] {
		return false, nil
	}
	f.marks[key] = true
	return true, nil
}

type sentEmail struct {
	receiver string
	subject  string
	content  string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (f *fakeEmailSender) SendEmail(ctx context.Context, receiver, subject, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentEmail{receiver: receiver, subject: subject, content: content})
	return nil
}

type sentSms struct {
	receiver string
	content  string
}

type fakeSmsSender struct {
	mu   sync.Mutex
	sent []sentSms
}

func (f *fakeSmsSender) SendSms(ctx context.Context, receiver, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentSms{receiver: receiver, content: content})
	return nil
}

type sentPush struct {
	key     string
	title   string
	content string
}

type fakePushSender struct {
	mu   sync.Mutex
	sent []sentPush
}

func (f *fakePushSender) SendPush(ctx context.Context, pushNotificationKey, title, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentPush{key: pushNotificationKey, title: title, content: content})
	return nil
}

type testEnv struct {
	reservations *fakeReservationRepo
	marks        *fakeReminderMarkRepo
	email        *fakeEmailSender
	sms          *fakeSmsSender
	push         *fakePushSender
	service      *Service
}

func newTestEnv() *testEnv {
	env := &testEnv{
		reservations: newFakeReservationRepo(),
		marks:        newFakeReminderMarkRepo(),
		email:        &fakeEmailSender{},
		sms:          &fakeSmsSender{},
		push:         &fakePushSender{},
	}

	repo := &repository.Repository{
		Reservation:  env.reservations,
		ReminderMark: env.marks,
	}
	notif := &notifier.Notifier{
		Email: env.email,
		Sms:   env.sms,
		Push:  env.push,
	}

	env.service = NewService(repo, notif, zap.NewNop())
	return env
}
