package templates

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// TemplateRepository интерфейс репозитория шаблонов доступности
type TemplateRepository interface {
	Create(ctx context.Context, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityTemplate, error)
	GetByTrainerID(ctx context.Context, trainerID int64, day *domain.DayOfWeek) ([]*domain.AvailabilityTemplate, error)
	Update(ctx context.Context, id int64, t *domain.AvailabilityTemplate) (*domain.AvailabilityTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
