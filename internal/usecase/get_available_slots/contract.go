package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetByTrainerID(ctx context.Context, trainerID int64, day *domain.DayOfWeek) ([]*domain.AvailabilityTemplate, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetByTrainerAndDate(ctx context.Context, trainerID int64, date time.Time) ([]*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
