package notifyservice

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Типы событий бронирования
const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent событие жизненного цикла бронирования для NotifyService
type ReservationEvent struct {
	Event         string `json:"event"`
	ReservationID int64  `json:"reservation_id"`
	ClientID      int64  `json:"client_id"`
	SessionID     int64  `json:"session_id"`
	Status        string `json:"status"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
