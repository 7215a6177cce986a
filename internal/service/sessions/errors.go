package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionOverlap возвращается, когда окно новой сессии пересекается
	// с существующей сессией тренера на ту же дату
	ErrSessionOverlap = errors.New("session overlaps existing session")

	// ErrSessionOccupied возвращается при попытке закрыть сессию
	// с занятыми местами
	ErrSessionOccupied = errors.New("session has confirmed reservations")

	// ErrCapacityBelowOccupancy возвращается, когда новая вместимость
	// меньше числа уже занятых мест
	ErrCapacityBelowOccupancy = errors.New("capacity below current occupancy")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("internal error")
)
