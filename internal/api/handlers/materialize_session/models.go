package materialize_session

import (
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	sessionModels "github.com/m04kA/FTM-BookingService/internal/service/sessions/models"
	materializeSession "github.com/m04kA/FTM-BookingService/internal/usecase/materialize_session"
)

// MaterializeSessionRequest HTTP request model
type MaterializeSessionRequest struct {
	TemplateID int64  `json:"templateId"`
	Date       string `json:"date"` // "2026-09-07"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MaterializeSessionRequest) ToUseCaseRequest() (*materializeSession.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &materializeSession.Request{
		TemplateID: r.TemplateID,
		Date:       date,
	}, nil
}

// FromDomainSession конвертирует сессию в HTTP response
func FromDomainSession(s *domain.Session) *sessionModels.SessionResponse {
	return sessionModels.FromDomainSession(s)
}
