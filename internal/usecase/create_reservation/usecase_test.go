package create_reservation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	sessionRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/session"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Фейки с мьютексами - конкурентные тесты гоняют use case из многих горутин

type fakeLedger struct {
	mu       sync.Mutex
	sessions map[int64]*domain.Session
}

func newFakeLedger(sessions ...*domain.Session) *fakeLedger {
	m := make(map[int64]*domain.Session, len(sessions))
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &fakeLedger{sessions: m}
}

func (f *fakeLedger) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeLedger) TryOccupy(_ context.Context, sessionID int64) (*domain.OccupancyToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	if s.Closed {
		return nil, sessionRepo.ErrSessionClosed
	}
	if s.ConfirmedCount >= s.Capacity {
		return nil, sessionRepo.ErrSessionFull
	}
	s.ConfirmedCount++
	return &domain.OccupancyToken{SessionID: sessionID}, nil
}

func (f *fakeLedger) Release(_ context.Context, sessionID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.sessions[sessionID]; ok && s.ConfirmedCount > 0 {
		s.ConfirmedCount--
	}
	return nil
}

func (f *fakeLedger) confirmedCount(sessionID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessions[sessionID].ConfirmedCount
}

type fakeReservationRepo struct {
	mu       sync.Mutex
	nextID   int64
	existing map[int64][]*domain.ReservationWithWindow
	created  []*domain.Reservation
	failNext error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		nextID:   1,
		existing: make(map[int64][]*domain.ReservationWithWindow),
	}
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return nil, err
	}
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.nextID++
	f.created = append(f.created, &created)
	return &created, nil
}

func (f *fakeReservationRepo) GetActiveByClientAndDate(_ context.Context, clientID int64, _ time.Time) ([]*domain.ReservationWithWindow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing[clientID], nil
}

func (f *fakeReservationRepo) AcquireClientLock(_ context.Context, _ int64) error {
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopNotify struct{}

func (noopNotify) ReservationCreated(context.Context, *domain.Reservation) {}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func testSession(id int64, date time.Time, start, end string, capacity int) *domain.Session {
	return &domain.Session{
		ID:        id,
		TrainerID: 100,
		Date:      date,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Capacity:  capacity,
	}
}

func newTestUseCase(repo *fakeReservationRepo, ledger *fakeLedger) *UseCase {
	return NewUseCase(repo, ledger, noopNotify{}, fakeTxManager{}, domain.StatusPendiente, noopLogger{})
}

func TestExecute_Success(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", 5))
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, ledger)

	resp, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ClientID)
	assert.Equal(t, int64(1), resp.SessionID)
	assert.Equal(t, domain.StatusPendiente, resp.Status)
	assert.Equal(t, types.TimeString("10:00"), resp.SessionStartTime)
	assert.Equal(t, 1, ledger.confirmedCount(1))
}

func TestExecute_ExplicitInitialStatus(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", 5))
	uc := newTestUseCase(newFakeReservationRepo(), ledger)

	confirmada := domain.StatusConfirmada
	resp, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1, Status: &confirmada})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmada, resp.Status)
}

func TestExecute_CancelledInitialStatusRejected(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", 5))
	uc := newTestUseCase(newFakeReservationRepo(), ledger)

	cancelada := domain.StatusCancelada
	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1, Status: &cancelada})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, 0, ledger.confirmedCount(1))
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeReservationRepo(), newFakeLedger())

	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 99})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_SessionClosed(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	session := testSession(1, date, "10:00", "11:00", 5)
	session.Closed = true
	uc := newTestUseCase(newFakeReservationRepo(), newFakeLedger(session))

	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1})
	assert.ErrorIs(t, err, ErrSessionClosed)
}

func TestExecute_ScheduleConflict(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(
		testSession(2, date, "10:30", "11:30", 5),
		testSession(3, date, "11:00", "12:00", 5),
	)
	repo := newFakeReservationRepo()
	// У клиента уже есть активное бронирование 10:00-11:00 на эту дату
	repo.existing[7] = []*domain.ReservationWithWindow{
		{
			Reservation: domain.Reservation{
				ID:        50,
				ClientID:  7,
				SessionID: 1,
				Status:    domain.StatusConfirmada,
			},
			SessionDate:      date,
			SessionStartTime: types.TimeString("10:00"),
			SessionEndTime:   types.TimeString("11:00"),
		},
	}
	uc := newTestUseCase(repo, ledger)

	// 10:30-11:30 пересекается с 10:00-11:00
	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 2})
	assert.ErrorIs(t, err, ErrScheduleConflict)
	assert.Equal(t, 0, ledger.confirmedCount(2))

	// 11:00-12:00 только соприкасается границей - конфликта нет
	_, err = uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 3})
	assert.NoError(t, err)
	assert.Equal(t, 1, ledger.confirmedCount(3))
}

func TestExecute_CancelledReservationDoesNotConflict(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(2, date, "10:30", "11:30", 5))
	repo := newFakeReservationRepo()
	repo.existing[7] = []*domain.ReservationWithWindow{
		{
			Reservation: domain.Reservation{
				ID:        50,
				ClientID:  7,
				SessionID: 1,
				Status:    domain.StatusCancelada,
			},
			SessionDate:      date,
			SessionStartTime: types.TimeString("10:00"),
			SessionEndTime:   types.TimeString("11:00"),
		},
	}
	uc := newTestUseCase(repo, ledger)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 2})
	assert.NoError(t, err)
}

func TestExecute_RebookingSameSessionConflicts(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", 5))
	repo := newFakeReservationRepo()
	repo.existing[7] = []*domain.ReservationWithWindow{
		{
			Reservation: domain.Reservation{
				ID:        50,
				ClientID:  7,
				SessionID: 1,
				Status:    domain.StatusPendiente,
			},
			SessionDate:      date,
			SessionStartTime: types.TimeString("10:00"),
			SessionEndTime:   types.TimeString("11:00"),
		},
	}
	uc := newTestUseCase(repo, ledger)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1})
	assert.ErrorIs(t, err, ErrScheduleConflict)
}

func TestExecute_CapacityNeverExceeded(t *testing.T) {
	const capacity = 3
	const clients = 10

	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", capacity))
	repo := newFakeReservationRepo()
	uc := newTestUseCase(repo, ledger)

	var wg sync.WaitGroup
	results := make(chan error, clients)
	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func(clientID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{ClientID: clientID, SessionID: 1})
			results <- err
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, clients-capacity, rejected)
	assert.Equal(t, capacity, ledger.confirmedCount(1))
}

func TestExecute_CompensatingReleaseOnCreateFailure(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	ledger := newFakeLedger(testSession(1, date, "10:00", "11:00", 3))
	repo := newFakeReservationRepo()
	repo.failNext = errors.New("insert failed")
	uc := newTestUseCase(repo, ledger)

	_, err := uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1})
	require.ErrorIs(t, err, ErrInternal)

	// Захваченное место возвращено компенсирующим Release
	assert.Equal(t, 0, ledger.confirmedCount(1))

	// Повторная попытка после сбоя проходит
	_, err = uc.Execute(context.Background(), &Request{ClientID: 7, SessionID: 1})
	assert.NoError(t, err)
	assert.Equal(t, 1, ledger.confirmedCount(1))
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(newFakeReservationRepo(), newFakeLedger())

	_, err := uc.Execute(context.Background(), &Request{ClientID: 0, SessionID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ClientID: 1, SessionID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
