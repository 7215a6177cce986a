package create_reservation

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	createReservation "github.com/m04kA/FTM-BookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SessionID int64   `json:"sessionId"`
	Status    *string `json:"status,omitempty"` // PENDIENTE или CONFIRMADA
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID               int64  `json:"id"`
	ClientID         int64  `json:"clientId"`
	SessionID        int64  `json:"sessionId"`
	Status           string `json:"status"`
	SessionDate      string `json:"sessionDate"`
	SessionStartTime string `json:"sessionStartTime"`
	SessionEndTime   string `json:"sessionEndTime"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) *createReservation.Request {
	var status *domain.ReservationStatus
	if r.Status != nil {
		s := domain.ReservationStatus(*r.Status)
		status = &s
	}
	return &createReservation.Request{
		ClientID:  clientID,
		SessionID: r.SessionID,
		Status:    status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:               resp.ID,
		ClientID:         resp.ClientID,
		SessionID:        resp.SessionID,
		Status:           string(resp.Status),
		SessionDate:      resp.SessionDate.Format(domain.DateFormat),
		SessionStartTime: resp.SessionStartTime.String(),
		SessionEndTime:   resp.SessionEndTime.String(),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
