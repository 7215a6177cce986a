package get_available_slots

import (
	"time"

	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Request модель запроса доступных слотов тренера на дату
type Request struct {
	TrainerID int64
	Date      time.Time
}

// Slot временное окно тренера с информацией о занятости
// SessionID заполнен для материализованных сессий; для окон шаблонов,
// ещё не материализованных на эту дату, заполнен TemplateID
type Slot struct {
	SessionID      *int64
	TemplateID     *int64
	StartTime      types.TimeString
	EndTime        types.TimeString
	AvailableSpots int
	TotalSpots     int
}

// Response модель ответа со слотами на дату
type Response struct {
	TrainerID int64
	Date      time.Time
	Slots     []Slot
}
