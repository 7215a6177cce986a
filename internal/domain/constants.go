package domain

// Default configuration values
const (
	DefaultSessionCapacity = 1
	MinSessionCapacity     = 1
	MaxSessionCapacity     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы бронирований, занимающих место в сессии
// Используется при подсчёте занятости и проверке пересечений
var ActiveStatuses = []ReservationStatus{
	StatusPendiente,
	StatusConfirmada,
}
