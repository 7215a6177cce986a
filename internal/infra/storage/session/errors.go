package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session.repository: session not found")

	// ErrSessionFull возвращается, когда в сессии не осталось свободных мест
	ErrSessionFull = errors.New("session.repository: session is full")

	// ErrSessionClosed возвращается при попытке занять место в закрытой сессии
	ErrSessionClosed = errors.New("session.repository: session is closed")

	// ErrSessionOccupied возвращается при попытке закрыть или удалить сессию
	// с активными бронированиями
	ErrSessionOccupied = errors.New("session.repository: session has confirmed reservations")

	// ErrCapacityBelowOccupancy возвращается, когда новая вместимость
	// меньше текущего количества занятых мест
	ErrCapacityBelowOccupancy = errors.New("session.repository: capacity below current occupancy")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("session.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("session.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("session.repository: failed to scan row")
)
