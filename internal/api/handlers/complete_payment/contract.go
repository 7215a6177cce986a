package complete_payment

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/service/payments/models"
)

type PaymentService interface {
	Complete(ctx context.Context, paymentID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
