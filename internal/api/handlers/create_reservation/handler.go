package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/FTM-BookingService/internal/api/handlers"
	"github.com/m04kA/FTM-BookingService/internal/api/middleware"
	createReservation "github.com/m04kA/FTM-BookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия не найдена"
	msgSessionClosed      = "сессия закрыта для бронирования"
	msgCapacityExceeded   = "в сессии не осталось свободных мест"
	msgScheduleConflict   = "у клиента уже есть бронирование на это время"
	msgInvalidStatus      = "недопустимый начальный статус бронирования"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(clientID))
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSessionNotFound):
			h.logger.Warn("POST /reservations - Session not found: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, createReservation.ErrSessionClosed):
			h.logger.Warn("POST /reservations - Session closed: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondConflict(w, msgSessionClosed)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			h.logger.Warn("POST /reservations - Capacity exceeded: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrScheduleConflict):
			h.logger.Warn("POST /reservations - Schedule conflict: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondConflict(w, msgScheduleConflict)

		case errors.Is(err, createReservation.ErrInvalidStatus):
			h.logger.Warn("POST /reservations - Invalid initial status: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: session_id=%d, client_id=%d", req.SessionID, clientID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: session_id=%d, client_id=%d, error=%v",
				req.SessionID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, session_id=%d, client_id=%d",
		result.ID, req.SessionID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
