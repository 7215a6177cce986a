package get_trainer_templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FTM-BookingService/internal/api/handlers"
	"github.com/m04kA/FTM-BookingService/internal/service/templates"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
	msgInvalidDay       = "неизвестный день недели"
)

type Handler struct {
	service TemplateService
	logger  Logger
}

func NewHandler(service TemplateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/templates?day=MON
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/templates - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	var day *string
	if d := r.URL.Query().Get("day"); d != "" {
		day = &d
	}

	result, err := h.service.GetTrainerTemplates(r.Context(), trainerID, day)
	if err != nil {
		switch {
		case errors.Is(err, templates.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/templates - Invalid day filter: trainer_id=%d", trainerID)
			handlers.RespondBadRequest(w, msgInvalidDay)
		default:
			h.logger.Error("GET /trainers/{id}/templates - Failed to get templates: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/templates - Fetched %d templates: trainer_id=%d", result.Total, trainerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
