package create_reservation

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID  int64
	SessionID int64
	// Status начальный статус бронирования; nil - статус по умолчанию
	// из конфигурации (PENDIENTE, если не переопределён)
	Status *domain.ReservationStatus
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	ClientID  int64
	SessionID int64
	Status    domain.ReservationStatus

	// Данные сессии для ответа клиенту
	SessionDate      time.Time
	SessionStartTime types.TimeString
	SessionEndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}
