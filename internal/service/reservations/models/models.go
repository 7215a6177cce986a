package models

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// ReservationResponse модель бронирования для слоя API
type ReservationResponse struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"clientId"`
	SessionID int64     `json:"sessionId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// FromDomainReservation конвертирует domain.Reservation в response модель
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:        r.ID,
		ClientID:  r.ClientID,
		SessionID: r.SessionID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(list))
	for i, r := range list {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}
