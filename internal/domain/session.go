package domain

import (
	"time"

	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Session конкретная датированная сессия тренера с ограничением вместимости
// Создается материализацией шаблона доступности или вручную (ad hoc)
type Session struct {
	ID               int64
	TrainerID        int64
	SourceTemplateID *int64 // nil для ad hoc сессий
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString

	// Capacity и ConfirmedCount - единственный разделяемый счетчик ядра.
	// ConfirmedCount мутирует только Capacity Ledger (TryOccupy/Release).
	Capacity       int
	ConfirmedCount int

	Closed bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableSpots возвращает количество свободных мест
func (s *Session) AvailableSpots() int {
	spots := s.Capacity - s.ConfirmedCount
	if spots < 0 {
		return 0
	}
	return spots
}

// IsFull возвращает true, если свободных мест нет
func (s *Session) IsFull() bool {
	return s.ConfirmedCount >= s.Capacity
}

// IsBookable возвращает true, если сессия принимает бронирования
func (s *Session) IsBookable() bool {
	return !s.Closed && !s.IsFull()
}

// Overlaps проверяет пересечение временных окон двух сессий одной даты
// Интервалы полуоткрытые [start, end): соприкасающиеся границы не пересекаются
func (s *Session) Overlaps(other *Session) bool {
	if !isSameDay(s.Date, other.Date) {
		return false
	}
	return s.StartTime.IsBefore(other.EndTime) && other.StartTime.IsBefore(s.EndTime)
}

// OccupancyToken единица вместимости, удержанная за бронированием
// Выдается атомарной операцией TryOccupy и возвращается через Release
// при отмене или компенсации неудавшейся записи
type OccupancyToken struct {
	SessionID int64
}

func isSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
