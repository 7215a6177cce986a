package update_session_capacity

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/service/sessions/models"
)

type SessionService interface {
	UpdateCapacity(ctx context.Context, id int64, capacity int) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
