package templates

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	templateRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/template"
	"github.com/m04kA/FTM-BookingService/internal/service/templates/models"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Service сервис для работы с шаблонами доступности тренеров
type Service struct {
	templateRepo TemplateRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса шаблонов
func NewService(templateRepo TemplateRepository, logger Logger) *Service {
	return &Service{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// Create создает шаблон доступности тренера
// Пересечения с другими шаблонами допустимы - они разрешаются при материализации
func (s *Service) Create(ctx context.Context, req *models.CreateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Create: creating template for trainer=%d day=%s window=%s-%s",
		req.TrainerID, req.DayOfWeek, req.StartTime, req.EndTime)

	if req.TrainerID <= 0 {
		s.logger.Warn("Create: missing trainer_id")
		return nil, fmt.Errorf("%w: trainer_id is required", ErrInvalidInput)
	}

	template, err := buildTemplate(req.DayOfWeek, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		s.logger.Warn("Create: invalid request for trainer=%d: %v", req.TrainerID, err)
		return nil, err
	}
	template.TrainerID = req.TrainerID

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		s.logger.Error("Create: repository error for trainer=%d: %v", req.TrainerID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created template id=%d for trainer=%d", created.ID, req.TrainerID)
	return models.FromDomainTemplate(created), nil
}

// GetByID получает шаблон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TemplateResponse, error) {
	s.logger.Info("GetByID: fetching template id=%d", id)

	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("GetByID: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("GetByID: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTemplate(template), nil
}

// GetTrainerTemplates получает шаблоны тренера
// Опционально фильтрует по дню недели
func (s *Service) GetTrainerTemplates(ctx context.Context, trainerID int64, day *string) (*models.TemplateListResponse, error) {
	s.logger.Info("GetTrainerTemplates: fetching templates for trainer=%d, day=%v", trainerID, day)

	var domainDay *domain.DayOfWeek
	if day != nil {
		d, ok := domain.ValidDayOfWeek(*day)
		if !ok {
			s.logger.Warn("GetTrainerTemplates: invalid day=%s for trainer=%d", *day, trainerID)
			return nil, fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, *day)
		}
		domainDay = &d
	}

	templates, err := s.templateRepo.GetByTrainerID(ctx, trainerID, domainDay)
	if err != nil {
		s.logger.Error("GetTrainerTemplates: repository error for trainer=%d: %v", trainerID, err)
		return nil, fmt.Errorf("%w: GetTrainerTemplates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetTrainerTemplates: successfully fetched %d templates for trainer=%d", len(templates), trainerID)
	return models.FromDomainTemplateList(templates), nil
}

// Update обновляет шаблон доступности
// Уже материализованные сессии не трогаем - изменение влияет только на будущие материализации
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTemplateRequest) (*models.TemplateResponse, error) {
	s.logger.Info("Update: updating template id=%d", id)

	template, err := buildTemplate(req.DayOfWeek, req.StartTime, req.EndTime, req.Capacity)
	if err != nil {
		s.logger.Warn("Update: invalid request for template id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.templateRepo.Update(ctx, id, template)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Update: template id=%d not found", id)
			return nil, ErrTemplateNotFound
		}
		s.logger.Error("Update: repository error for template id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated template id=%d", id)
	return models.FromDomainTemplate(updated), nil
}

// Delete удаляет шаблон доступности
// Материализованные из него сессии остаются жить своей жизнью
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting template id=%d", id)

	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			s.logger.Warn("Delete: template id=%d not found", id)
			return ErrTemplateNotFound
		}
		s.logger.Error("Delete: repository error for template id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted template id=%d", id)
	return nil
}

// buildTemplate валидирует поля запроса и собирает domain.AvailabilityTemplate
func buildTemplate(dayOfWeek, startTime, endTime string, capacity *int) (*domain.AvailabilityTemplate, error) {
	day, ok := domain.ValidDayOfWeek(dayOfWeek)
	if !ok {
		return nil, fmt.Errorf("%w: unknown day of week %q", ErrInvalidInput, dayOfWeek)
	}

	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_time %q", ErrInvalidInput, startTime)
	}
	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_time %q", ErrInvalidInput, endTime)
	}

	if capacity != nil && (*capacity < domain.MinSessionCapacity || *capacity > domain.MaxSessionCapacity) {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSessionCapacity, domain.MaxSessionCapacity)
	}

	template := &domain.AvailabilityTemplate{
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		Capacity:  capacity,
	}
	if !template.IsValidWindow() {
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}
	return template, nil
}
