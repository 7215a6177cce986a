package domain

import (
	"time"

	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// DayOfWeek день недели шаблона доступности
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "MON"
	DayTuesday   DayOfWeek = "TUE"
	DayWednesday DayOfWeek = "WED"
	DayThursday  DayOfWeek = "THU"
	DayFriday    DayOfWeek = "FRI"
	DaySaturday  DayOfWeek = "SAT"
	DaySunday    DayOfWeek = "SUN"
)

// AvailabilityTemplate еженедельное окно доступности тренера
// Шаблоны одного тренера могут пересекаться между собой -
// разрешение пересечений происходит при материализации, не здесь
type AvailabilityTemplate struct {
	ID        int64
	TrainerID int64
	DayOfWeek DayOfWeek
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  *int // nil - использовать вместимость по умолчанию из конфигурации

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidWindow проверяет инвариант start_time < end_time
func (t *AvailabilityTemplate) IsValidWindow() bool {
	return t.StartTime.IsBefore(t.EndTime)
}

// MatchesDate возвращает true, если день недели даты совпадает с шаблоном
func (t *AvailabilityTemplate) MatchesDate(date time.Time) bool {
	return FromWeekday(date.Weekday()) == t.DayOfWeek
}

// ValidDayOfWeek проверяет, что строка является известным днём недели
func ValidDayOfWeek(s string) (DayOfWeek, bool) {
	switch DayOfWeek(s) {
	case DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday:
		return DayOfWeek(s), true
	default:
		return "", false
	}
}

// FromWeekday конвертирует time.Weekday в DayOfWeek
func FromWeekday(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return DayMonday
	case time.Tuesday:
		return DayTuesday
	case time.Wednesday:
		return DayWednesday
	case time.Thursday:
		return DayThursday
	case time.Friday:
		return DayFriday
	case time.Saturday:
		return DaySaturday
	default:
		return DaySunday
	}
}
