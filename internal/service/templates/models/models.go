package models

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
)

// CreateTemplateRequest запрос на создание шаблона доступности
type CreateTemplateRequest struct {
	TrainerID int64  `json:"trainerId"`
	DayOfWeek string `json:"dayOfWeek"` // MON..SUN
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
	Capacity  *int   `json:"capacity,omitempty"`
}

// UpdateTemplateRequest запрос на обновление шаблона доступности
type UpdateTemplateRequest struct {
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Capacity  *int   `json:"capacity,omitempty"`
}

// TemplateResponse модель шаблона для слоя API
type TemplateResponse struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainerId"`
	DayOfWeek string    `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Capacity  *int      `json:"capacity,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TemplateListResponse список шаблонов тренера
type TemplateListResponse struct {
	Templates []*TemplateResponse `json:"templates"`
	Total     int                 `json:"total"`
}

// FromDomainTemplate конвертирует domain.AvailabilityTemplate в response модель
func FromDomainTemplate(t *domain.AvailabilityTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:        t.ID,
		TrainerID: t.TrainerID,
		DayOfWeek: string(t.DayOfWeek),
		StartTime: t.StartTime.String(),
		EndTime:   t.EndTime.String(),
		Capacity:  t.Capacity,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTemplateList конвертирует список шаблонов
func FromDomainTemplateList(list []*domain.AvailabilityTemplate) *TemplateListResponse {
	out := make([]*TemplateResponse, len(list))
	for i, t := range list {
		out[i] = FromDomainTemplate(t)
	}
	return &TemplateListResponse{
		Templates: out,
		Total:     len(out),
	}
}
