package reservations

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/FTM-BookingService/internal/service/reservations/models"
)

type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[int64]*domain.Reservation
}

func newFakeReservationRepo(list ...*domain.Reservation) *fakeReservationRepo {
	m := make(map[int64]*domain.Reservation, len(list))
	for _, r := range list {
		m[r.ID] = r
	}
	return &fakeReservationRepo{reservations: m}
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeReservationRepo) GetByClientID(_ context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.ClientID != clientID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReservationRepo) GetBySessionID(_ context.Context, sessionID int64) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.SessionID == sessionID {
			copied := *r
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	return nil
}

type fakeLedger struct {
	mu       sync.Mutex
	released map[int64]int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{released: make(map[int64]int)}
}

func (f *fakeLedger) Release(_ context.Context, sessionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.released[sessionID]++
	return nil
}

func (f *fakeLedger) releaseCount(sessionID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.released[sessionID]
}

type fakeNotify struct {
	mu     sync.Mutex
	events []*domain.Reservation
}

func (f *fakeNotify) ReservationStatusChanged(_ context.Context, res *domain.Reservation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, res)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeReservationRepo, ledger *fakeLedger) *Service {
	return NewService(repo, ledger, &fakeNotify{}, fakeTxManager{}, noopLogger{})
}

func reservation(id int64, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		ClientID:  7,
		SessionID: 1,
		Status:    status,
	}
}

func TestGetByID(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusPendiente))
	svc := newTestService(repo, newFakeLedger())

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPendiente), resp.Status)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestConfirm(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusPendiente))
	svc := newTestService(repo, newFakeLedger())

	err := svc.Confirm(context.Background(), 1)
	require.NoError(t, err)

	updated, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusConfirmada, updated.Status)
}

func TestConfirm_AlreadyConfirmedRejected(t *testing.T) {
	// CONFIRMADA -> CONFIRMADA не разрешён таблицей переходов
	repo := newFakeReservationRepo(reservation(1, domain.StatusConfirmada))
	svc := newTestService(repo, newFakeLedger())

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirm_CancelledReservationRejected(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusCancelada))
	svc := newTestService(repo, newFakeLedger())

	err := svc.Confirm(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	unchanged, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusCancelada, unchanged.Status)
}

func TestUpdateStatus_PendienteRollbackRejected(t *testing.T) {
	// CONFIRMADA -> PENDIENTE запрещён таблицей переходов
	repo := newFakeReservationRepo(reservation(1, domain.StatusConfirmada))
	svc := newTestService(repo, newFakeLedger())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status: string(domain.StatusPendiente),
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusPendiente))
	svc := newTestService(repo, newFakeLedger())

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "APROBADA"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_CanceladaDelegatesToCancel(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusConfirmada))
	ledger := newFakeLedger()
	svc := newTestService(repo, ledger)

	err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status: string(domain.StatusCancelada),
	})
	require.NoError(t, err)

	updated, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusCancelada, updated.Status)
	assert.Equal(t, 1, ledger.releaseCount(1))
}

func TestCancel_ReleasesSpot(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusPendiente))
	ledger := newFakeLedger()
	svc := newTestService(repo, ledger)

	err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)

	updated, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusCancelada, updated.Status)
	assert.Equal(t, 1, ledger.releaseCount(1))
}

func TestCancel_IdempotentNoDoubleRelease(t *testing.T) {
	repo := newFakeReservationRepo(reservation(1, domain.StatusConfirmada))
	ledger := newFakeLedger()
	svc := newTestService(repo, ledger)

	require.NoError(t, svc.Cancel(context.Background(), 1))
	require.NoError(t, svc.Cancel(context.Background(), 1))
	require.NoError(t, svc.Cancel(context.Background(), 1))

	// Место возвращается ровно один раз, сколько бы раз ни отменяли
	assert.Equal(t, 1, ledger.releaseCount(1))
}

func TestCancel_NotFound(t *testing.T) {
	svc := newTestService(newFakeReservationRepo(), newFakeLedger())

	err := svc.Cancel(context.Background(), 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetClientReservations_StatusFilter(t *testing.T) {
	repo := newFakeReservationRepo(
		reservation(1, domain.StatusPendiente),
		reservation(2, domain.StatusConfirmada),
		reservation(3, domain.StatusCancelada),
	)
	svc := newTestService(repo, newFakeLedger())

	all, err := svc.GetClientReservations(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	confirmada := string(domain.StatusConfirmada)
	filtered, err := svc.GetClientReservations(context.Background(), 7, &confirmada)
	require.NoError(t, err)
	assert.Equal(t, 1, filtered.Total)

	bad := "APROBADA"
	_, err = svc.GetClientReservations(context.Background(), 7, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
