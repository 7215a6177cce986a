package create_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/FTM-BookingService/internal/api/handlers"
	"github.com/m04kA/FTM-BookingService/internal/service/sessions"
	"github.com/m04kA/FTM-BookingService/internal/service/sessions/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные сессии"
	msgSessionOverlap     = "окно сессии пересекается с существующей сессией тренера"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("POST /sessions - Invalid input: trainer_id=%d, error=%v", req.TrainerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, sessions.ErrSessionOverlap):
			h.logger.Warn("POST /sessions - Session overlap: trainer_id=%d, date=%s", req.TrainerID, req.Date)
			handlers.RespondConflict(w, msgSessionOverlap)
		default:
			h.logger.Error("POST /sessions - Failed to create session: trainer_id=%d, error=%v",
				req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions - Session created successfully: session_id=%d, trainer_id=%d",
		result.ID, req.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
