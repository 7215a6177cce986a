package create_reservation

import (
	"fmt"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	if req.Status != nil && !domain.ValidInitialStatus(*req.Status) {
		return fmt.Errorf("%w: %q is not allowed at creation", ErrInvalidStatus, *req.Status)
	}

	return nil
}

// findOverlap ищет первое неотменённое бронирование клиента, окно сессии
// которого пересекается с окном целевой сессии
// Интервалы полуоткрытые [start, end): сессии 10:00-11:00 и 11:00-12:00
// не конфликтуют
func findOverlap(session *domain.Session, existing []*domain.ReservationWithWindow) *domain.ReservationWithWindow {
	for _, res := range existing {
		if !res.IsActive() {
			continue
		}
		if res.SessionID == session.ID {
			// Повторное бронирование той же сессии - тоже пересечение
			return res
		}
		if res.OverlapsWindow(session.Date, session.StartTime, session.EndTime) {
			return res
		}
	}
	return nil
}
