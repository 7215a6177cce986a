package materialize_session

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
}

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	GetOrCreateForTemplate(ctx context.Context, s *domain.Session) (*domain.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
