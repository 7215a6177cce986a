package update_session_capacity

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FTM-BookingService/internal/api/handlers"
	"github.com/m04kA/FTM-BookingService/internal/service/sessions"
)

const (
	msgInvalidSessionID       = "некорректный ID сессии"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgNotFound               = "сессия не найдена"
	msgInvalidCapacity        = "некорректная вместимость сессии"
	msgCapacityBelowOccupancy = "вместимость меньше числа занятых мест"
)

// UpdateCapacityRequest HTTP request model
type UpdateCapacityRequest struct {
	Capacity int `json:"capacity"`
}

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

// Handle PATCH /api/v1/sessions/{sessionId}/capacity
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, err := strconv.ParseInt(vars["sessionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /sessions/{id}/capacity - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	var req UpdateCapacityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sessions/{id}/capacity - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCapacity(r.Context(), sessionID, req.Capacity)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrSessionNotFound):
			h.logger.Warn("PATCH /sessions/{id}/capacity - Session not found: session_id=%d", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, sessions.ErrInvalidInput):
			h.logger.Warn("PATCH /sessions/{id}/capacity - Invalid capacity=%d: session_id=%d", req.Capacity, sessionID)
			handlers.RespondBadRequest(w, msgInvalidCapacity)

		case errors.Is(err, sessions.ErrCapacityBelowOccupancy):
			h.logger.Warn("PATCH /sessions/{id}/capacity - Capacity below occupancy: session_id=%d, capacity=%d",
				sessionID, req.Capacity)
			handlers.RespondConflict(w, msgCapacityBelowOccupancy)

		default:
			h.logger.Error("PATCH /sessions/{id}/capacity - Failed to update capacity: session_id=%d, error=%v",
				sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sessions/{id}/capacity - Capacity updated successfully: session_id=%d, capacity=%d",
		sessionID, req.Capacity)
	handlers.RespondJSON(w, http.StatusOK, result)
}
