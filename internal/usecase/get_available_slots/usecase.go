package get_available_slots

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	"github.com/m04kA/FTM-BookingService/pkg/ptr"
)

// UseCase use case получения доступных слотов тренера на дату
// Объединяет материализованные сессии с ещё не материализованными
// окнами шаблонов этого дня недели
type UseCase struct {
	templateRepo    TemplateRepository
	sessionRepo     SessionRepository
	defaultCapacity int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	templateRepo TemplateRepository,
	sessionRepo SessionRepository,
	defaultCapacity int,
	logger Logger,
) *UseCase {
	if defaultCapacity < domain.MinSessionCapacity {
		defaultCapacity = domain.DefaultSessionCapacity
	}
	return &UseCase{
		templateRepo:    templateRepo,
		sessionRepo:     sessionRepo,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// Execute возвращает слоты тренера на дату с количеством свободных мест
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: trainer=%d, date=%s", req.TrainerID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	sessions, err := uc.sessionRepo.GetByTrainerAndDate(ctx, req.TrainerID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get sessions: %v", ErrInternal, err)
	}

	day := domain.FromWeekday(req.Date.Weekday())
	templates, err := uc.templateRepo.GetByTrainerID(ctx, req.TrainerID, &day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get templates: %v", err)
		return nil, fmt.Errorf("%w: failed to get templates: %v", ErrInternal, err)
	}

	slots := buildSlots(sessions, templates, uc.defaultCapacity)

	uc.logger.Info("GetAvailableSlots: %d slots for trainer=%d, date=%s",
		len(slots), req.TrainerID, req.Date.Format(domain.DateFormat))

	return &Response{
		TrainerID: req.TrainerID,
		Date:      req.Date,
		Slots:     slots,
	}, nil
}

// buildSlots собирает слоты из материализованных сессий и окон шаблонов
// Шаблон, уже материализованный на эту дату, второй раз не показывается -
// его занятость отражает сессия
func buildSlots(sessions []*domain.Session, templates []*domain.AvailabilityTemplate, defaultCapacity int) []Slot {
	slots := make([]Slot, 0, len(sessions)+len(templates))
	materialized := make(map[int64]bool, len(sessions))

	for _, s := range sessions {
		if s.Closed {
			continue
		}
		if s.SourceTemplateID != nil {
			materialized[*s.SourceTemplateID] = true
		}
		slots = append(slots, Slot{
			SessionID:      ptr.Ptr(s.ID),
			TemplateID:     s.SourceTemplateID,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			AvailableSpots: s.AvailableSpots(),
			TotalSpots:     s.Capacity,
		})
	}

	for _, t := range templates {
		if materialized[t.ID] {
			continue
		}
		capacity := defaultCapacity
		if t.Capacity != nil {
			capacity = *t.Capacity
		}
		slots = append(slots, Slot{
			TemplateID:     ptr.Ptr(t.ID),
			StartTime:      t.StartTime,
			EndTime:        t.EndTime,
			AvailableSpots: capacity,
			TotalSpots:     capacity,
		})
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots
}

func validateRequest(req *Request) error {
	if req.TrainerID <= 0 {
		return fmt.Errorf("%w: trainerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
