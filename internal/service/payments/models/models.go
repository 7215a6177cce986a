package models

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// CreatePaymentRequest запрос на привязку платежа к бронированию
type CreatePaymentRequest struct {
	ReservationID int64   `json:"reservationId"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"` // card, cash, transfer
}

// PaymentResponse модель платежа для слоя API
type PaymentResponse struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservationId"`
	Amount        float64   `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PaymentListResponse список платежей бронирования
type PaymentListResponse struct {
	Payments []*PaymentResponse `json:"payments"`
	Total    int                `json:"total"`
}

// FromDomainPayment конвертирует domain.Payment в response модель
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		ReservationID: p.ReservationID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// FromDomainPaymentList конвертирует список платежей
func FromDomainPaymentList(list []*domain.Payment) *PaymentListResponse {
	out := make([]*PaymentResponse, len(list))
	for i, p := range list {
		out[i] = FromDomainPayment(p)
	}
	return &PaymentListResponse{
		Payments: out,
		Total:    len(out),
	}
}
