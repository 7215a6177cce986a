package materialize_session

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон доступности не найден
	ErrTemplateNotFound = errors.New("materialize_session: availability template not found")

	// ErrInvalidDate возвращается, когда день недели даты не совпадает
	// с днём недели шаблона; повтор с теми же аргументами бессмыслен
	ErrInvalidDate = errors.New("materialize_session: date weekday does not match template")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("materialize_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("materialize_session: internal error")
)
