package reservations

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	GetBySessionID(ctx context.Context, sessionID int64) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// SessionLedger интерфейс учета занятости сессий
// Отмена бронирования возвращает место через Release
type SessionLedger interface {
	Release(ctx context.Context, sessionID int64) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	ReservationStatusChanged(ctx context.Context, res *domain.Reservation)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
