package models

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// CreateSessionRequest запрос на создание ad hoc сессии
type CreateSessionRequest struct {
	TrainerID int64  `json:"trainerId"`
	Date      string `json:"date"`      // "2026-09-07"
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Capacity  *int   `json:"capacity,omitempty"`
}

// SessionResponse модель сессии для слоя API
type SessionResponse struct {
	ID               int64     `json:"id"`
	TrainerID        int64     `json:"trainerId"`
	SourceTemplateID *int64    `json:"sourceTemplateId,omitempty"`
	Date             string    `json:"date"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	Capacity         int       `json:"capacity"`
	ConfirmedCount   int       `json:"confirmedCount"`
	AvailableSpots   int       `json:"availableSpots"`
	Closed           bool      `json:"closed"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FromDomainSession конвертирует domain.Session в response модель
func FromDomainSession(s *domain.Session) *SessionResponse {
	return &SessionResponse{
		ID:               s.ID,
		TrainerID:        s.TrainerID,
		SourceTemplateID: s.SourceTemplateID,
		Date:             s.Date.Format(domain.DateFormat),
		StartTime:        s.StartTime.String(),
		EndTime:          s.EndTime.String(),
		Capacity:         s.Capacity,
		ConfirmedCount:   s.ConfirmedCount,
		AvailableSpots:   s.AvailableSpots(),
		Closed:           s.Closed,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
