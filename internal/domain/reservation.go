package domain

import (
	"time"

	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// ReservationStatus статус бронирования сессии
type ReservationStatus string

const (
	StatusPendiente  ReservationStatus = "PENDIENTE"
	StatusConfirmada ReservationStatus = "CONFIRMADA"
	StatusCancelada  ReservationStatus = "CANCELADA"
)

// Reservation бронирование клиентом конкретной сессии тренера
type Reservation struct {
	ID        int64
	ClientID  int64
	SessionID int64
	Status    ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive возвращает true, если бронирование занимает место в сессии
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelada
}

// IsTerminal возвращает true для терминального статуса
// CANCELADA - единственный терминальный статус
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelada
}

// CanTransitionTo проверяет допустимость перехода в статус target
// Таблица переходов:
//
//	PENDIENTE  -> CONFIRMADA, CANCELADA
//	CONFIRMADA -> CANCELADA
//	CANCELADA  -> (терминальный)
func (r *Reservation) CanTransitionTo(target ReservationStatus) bool {
	switch r.Status {
	case StatusPendiente:
		return target == StatusConfirmada || target == StatusCancelada
	case StatusConfirmada:
		return target == StatusCancelada
	default:
		return false
	}
}

// ReservationWithWindow бронирование вместе с временным окном его сессии
// Результат join'а для проверки пересечений расписания клиента
type ReservationWithWindow struct {
	Reservation
	SessionDate      time.Time
	SessionStartTime types.TimeString
	SessionEndTime   types.TimeString
}

// OverlapsWindow проверяет пересечение окна сессии бронирования с окном
// [start, end) той же даты; интервалы полуоткрытые, соприкасающиеся
// границы не конфликтуют
func (r *ReservationWithWindow) OverlapsWindow(date time.Time, start, end types.TimeString) bool {
	if !isSameDay(r.SessionDate, date) {
		return false
	}
	return r.SessionStartTime.IsBefore(end) && start.IsBefore(r.SessionEndTime)
}

// ValidReservationStatus проверяет, что строка является известным статусом
func ValidReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPendiente, StatusConfirmada, StatusCancelada:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// ValidInitialStatus проверяет, что статус допустим при создании бронирования
// Создание сразу в CANCELADA запрещено
func ValidInitialStatus(s ReservationStatus) bool {
	return s == StatusPendiente || s == StatusConfirmada
}
