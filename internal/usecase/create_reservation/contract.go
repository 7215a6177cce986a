package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	GetActiveByClientAndDate(ctx context.Context, clientID int64, date time.Time) ([]*domain.ReservationWithWindow, error)
	AcquireClientLock(ctx context.Context, clientID int64) error
}

// SessionLedger интерфейс учета занятости сессий
// TryOccupy и Release - единственные операции, мутирующие confirmed_count
type SessionLedger interface {
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	TryOccupy(ctx context.Context, sessionID int64) (*domain.OccupancyToken, error)
	Release(ctx context.Context, sessionID int64) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	ReservationCreated(ctx context.Context, res *domain.Reservation)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
