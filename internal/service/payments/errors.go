package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrReservationNotFound возвращается, когда бронирование платежа не найдено
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrReservationNotConfirmed возвращается при попытке привязать платёж
	// к неподтверждённому бронированию
	ErrReservationNotConfirmed = errors.New("reservation is not confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("internal error")
)
