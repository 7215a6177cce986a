package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	paymentRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/FTM-BookingService/internal/service/payments/models"
)

type fakePaymentRepo struct {
	nextID   int64
	payments map[int64]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{nextID: 0, payments: make(map[int64]*domain.Payment)}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	created := *p
	created.ID = f.nextID
	f.payments[created.ID] = &created
	return &created, nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaymentRepo) GetByReservationID(_ context.Context, reservationID int64) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range f.payments {
		if p.ReservationID == reservationID {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	p, ok := f.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	p.Status = status
	return nil
}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return r, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(payments *fakePaymentRepo, status domain.ReservationStatus) *Service {
	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		1: {ID: 1, ClientID: 7, SessionID: 10, Status: status},
	}}
	return NewService(payments, reservations, noopLogger{})
}

func TestCreate(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), domain.StatusConfirmada)

	resp, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 1,
		Amount:        49.90,
		Method:        "card",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ReservationID)
	assert.Equal(t, string(domain.PaymentPendiente), resp.Status)
	assert.Equal(t, "card", resp.Method)
}

func TestCreate_RequiresConfirmedReservation(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), domain.StatusPendiente)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 1,
		Amount:        49.90,
		Method:        "card",
	})
	assert.ErrorIs(t, err, ErrReservationNotConfirmed)
}

func TestCreate_ReservationNotFound(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), domain.StatusConfirmada)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 99,
		Amount:        49.90,
		Method:        "card",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), domain.StatusConfirmada)

	_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 1,
		Amount:        0,
		Method:        "card",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 1,
		Amount:        10,
		Method:        "bitcoin",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComplete_Idempotent(t *testing.T) {
	payments := newFakePaymentRepo()
	svc := newTestService(payments, domain.StatusConfirmada)

	created, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
		ReservationID: 1,
		Amount:        49.90,
		Method:        "cash",
	})
	require.NoError(t, err)

	first, err := svc.Complete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompletado), first.Status)

	// Повторное завершение - no-op
	second, err := svc.Complete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.PaymentCompletado), second.Status)
}

func TestComplete_NotFound(t *testing.T) {
	svc := newTestService(newFakePaymentRepo(), domain.StatusConfirmada)

	_, err := svc.Complete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestGetByReservation(t *testing.T) {
	payments := newFakePaymentRepo()
	svc := newTestService(payments, domain.StatusConfirmada)

	for i := 0; i < 2; i++ {
		_, err := svc.Create(context.Background(), &models.CreatePaymentRequest{
			ReservationID: 1,
			Amount:        25,
			Method:        "transfer",
		})
		require.NoError(t, err)
	}

	resp, err := svc.GetByReservation(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}
