package get_session_reservations

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetSessionReservations(ctx context.Context, sessionID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
