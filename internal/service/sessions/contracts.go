package sessions

import (
	"context"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetByID(ctx context.Context, id int64) (*domain.Session, error)
	GetByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Session, error)
	UpdateCapacity(ctx context.Context, id int64, capacity int) (*domain.Session, error)
	Close(ctx context.Context, id int64) error
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
