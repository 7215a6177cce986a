package get_reservation_payments

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/service/payments/models"
)

type PaymentService interface {
	GetByReservation(ctx context.Context, reservationID int64) (*models.PaymentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
