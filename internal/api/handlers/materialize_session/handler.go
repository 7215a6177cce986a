package materialize_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/FTM-BookingService/internal/api/handlers"
	materializeSession "github.com/m04kA/FTM-BookingService/internal/usecase/materialize_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgTemplateNotFound   = "шаблон не найден"
	msgDateMismatch       = "день недели даты не совпадает с шаблоном"
	msgInvalidInput       = "некорректные данные материализации"
)

type Handler struct {
	useCase MaterializeSessionUseCase
	logger  Logger
}

func NewHandler(useCase MaterializeSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/materialize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req MaterializeSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/materialize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /sessions/materialize - Invalid date=%s: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, materializeSession.ErrTemplateNotFound):
			h.logger.Warn("POST /sessions/materialize - Template not found: template_id=%d", req.TemplateID)
			handlers.RespondNotFound(w, msgTemplateNotFound)

		case errors.Is(err, materializeSession.ErrInvalidDate):
			h.logger.Warn("POST /sessions/materialize - Date mismatch: template_id=%d, date=%s", req.TemplateID, req.Date)
			handlers.RespondBadRequest(w, msgDateMismatch)

		case errors.Is(err, materializeSession.ErrInvalidInput):
			h.logger.Warn("POST /sessions/materialize - Invalid input: template_id=%d", req.TemplateID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions/materialize - Failed to materialize session: template_id=%d, date=%s, error=%v",
				req.TemplateID, req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/materialize - Session materialized successfully: session_id=%d, template_id=%d, date=%s",
		session.ID, req.TemplateID, req.Date)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSession(session))
}
