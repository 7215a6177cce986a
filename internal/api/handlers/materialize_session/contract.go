package materialize_session

import (
	"context"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	materializeSession "github.com/m04kA/FTM-BookingService/internal/usecase/materialize_session"
)

type MaterializeSessionUseCase interface {
	Execute(ctx context.Context, req *materializeSession.Request) (*domain.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
