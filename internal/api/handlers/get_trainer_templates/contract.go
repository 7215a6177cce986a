package get_trainer_templates

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/service/templates/models"
)

type TemplateService interface {
	GetTrainerTemplates(ctx context.Context, trainerID int64, day *string) (*models.TemplateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
