package create_reservation

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена
	ErrSessionNotFound = errors.New("create_reservation: session not found")

	// ErrSessionClosed возвращается, когда сессия закрыта тренером
	ErrSessionClosed = errors.New("create_reservation: session is closed")

	// ErrCapacityExceeded возвращается, когда все места сессии заняты
	// Повтор того же запроса - новая попытка, дедупликация не выполняется
	ErrCapacityExceeded = errors.New("create_reservation: session capacity exceeded")

	// ErrScheduleConflict возвращается, когда у клиента уже есть неотменённое
	// бронирование с пересекающимся временным окном на ту же дату
	ErrScheduleConflict = errors.New("create_reservation: client schedule conflict")

	// ErrInvalidStatus возвращается при недопустимом начальном статусе
	ErrInvalidStatus = errors.New("create_reservation: invalid initial status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
