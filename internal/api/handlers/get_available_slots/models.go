package get_available_slots

import (
	"github.com/m04kA/FTM-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/FTM-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	SessionID      *int64 `json:"sessionId,omitempty"`
	TemplateID     *int64 `json:"templateId,omitempty"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	AvailableSpots int    `json:"availableSpots"`
	TotalSpots     int    `json:"totalSpots"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами на дату
type AvailableSlotsResponse struct {
	TrainerID int64          `json:"trainerId"`
	Date      string         `json:"date"`
	Slots     []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, s := range resp.Slots {
		slots[i] = SlotResponse{
			SessionID:      s.SessionID,
			TemplateID:     s.TemplateID,
			StartTime:      s.StartTime.String(),
			EndTime:        s.EndTime.String(),
			AvailableSpots: s.AvailableSpots,
			TotalSpots:     s.TotalSpots,
		}
	}
	return &AvailableSlotsResponse{
		TrainerID: resp.TrainerID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
