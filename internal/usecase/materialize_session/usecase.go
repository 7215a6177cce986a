package materialize_session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	templateRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/template"
	"github.com/m04kA/FTM-BookingService/pkg/ptr"
)

// Request модель запроса на материализацию сессии
type Request struct {
	TemplateID int64
	Date       time.Time
}

// UseCase use case материализации сессии из шаблона доступности
// Превращает еженедельное окно шаблона в конкретную датированную сессию
// с ограничением вместимости
type UseCase struct {
	templateRepo    TemplateRepository
	sessionRepo     SessionRepository
	defaultCapacity int
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// defaultCapacity - вместимость сессии, если шаблон её не переопределяет
// (значение из конфигурации, не захардкожено)
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

// Execute материализует сессию из шаблона на дату
// Идемпотентен: повторная материализация той же пары (шаблон, дата)
// возвращает существующую сессию, а не создает дубликат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Session, error) {
	uc.logger.Info("MaterializeSession: template=%d, date=%s", req.TemplateID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MaterializeSession: validation failed: %v", err)
		return nil, err
	}

	template, err := uc.templateRepo.GetByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, templateRepo.ErrTemplateNotFound) {
			uc.logger.Warn("MaterializeSession: template id=%d not found", req.TemplateID)
			return nil, ErrTemplateNotFound
		}
		uc.logger.Error("MaterializeSession: failed to get template id=%d: %v", req.TemplateID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	if !template.MatchesDate(req.Date) {
		uc.logger.Warn("MaterializeSession: date %s is %s, template id=%d expects %s",
			req.Date.Format(domain.DateFormat), domain.FromWeekday(req.Date.Weekday()),
			template.ID, template.DayOfWeek)
		return nil, fmt.Errorf("%w: date %s is %s, expected %s",
			ErrInvalidDate, req.Date.Format(domain.DateFormat),
			domain.FromWeekday(req.Date.Weekday()), template.DayOfWeek)
	}

	capacity := uc.defaultCapacity
	if template.Capacity != nil {
		capacity = *template.Capacity
	}

	// Временные границы копируются из шаблона без изменений
	session := &domain.Session{
		TrainerID:        template.TrainerID,
		SourceTemplateID: ptr.Ptr(template.ID),
		Date:             req.Date,
		StartTime:        template.StartTime,
		EndTime:          template.EndTime,
		Capacity:         capacity,
	}

	created, err := uc.sessionRepo.GetOrCreateForTemplate(ctx, session)
	if err != nil {
		uc.logger.Error("MaterializeSession: failed to materialize session: %v", err)
		return nil, fmt.Errorf("%w: failed to materialize session: %v", ErrInternal, err)
	}

	uc.logger.Info("MaterializeSession: session id=%d for template=%d, date=%s (%s-%s, capacity=%d)",
		created.ID, req.TemplateID, req.Date.Format(domain.DateFormat),
		created.StartTime, created.EndTime, created.Capacity)

	return created, nil
}

func validateRequest(req *Request) error {
	if req.TemplateID <= 0 {
		return fmt.Errorf("%w: templateID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
