package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	sessionRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/session"
	"github.com/m04kA/FTM-BookingService/internal/service/sessions/models"
	"github.com/m04kA/FTM-BookingService/pkg/types"
)

// Service сервис для работы с сессиями тренеров
type Service struct {
	sessionRepo     SessionRepository
	txManager       TransactionManager
	logger          Logger
	defaultCapacity int
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	txManager TransactionManager,
	logger Logger,
	defaultCapacity int,
) *Service {
	return &Service{
		sessionRepo:     sessionRepo,
		txManager:       txManager,
		logger:          logger,
		defaultCapacity: defaultCapacity,
	}
}

// Create создает ad hoc сессию без привязки к шаблону
// Окно не должно пересекаться с другими сессиями тренера на эту дату
func (s *Service) Create(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("Create: creating session for trainer=%d on date=%s window=%s-%s",
		req.TrainerID, req.Date, req.StartTime, req.EndTime)

	session, err := s.buildSession(req)
	if err != nil {
		s.logger.Warn("Create: invalid request for trainer=%d: %v", req.TrainerID, err)
		return nil, err
	}

	var created *domain.Session
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		existing, err := s.sessionRepo.GetByTrainerAndDate(ctx, req.TrainerID, session.Date)
		if err != nil {
			return fmt.Errorf("%w: Create - fetch trainer sessions: %v", ErrInternal, err)
		}
		for _, other := range existing {
			if !other.Closed && session.Overlaps(other) {
				return fmt.Errorf("%w: session id=%d window=%s-%s",
					ErrSessionOverlap, other.ID, other.StartTime, other.EndTime)
			}
		}

		created, err = s.sessionRepo.Create(ctx, session)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionOverlap) {
			s.logger.Warn("Create: overlap for trainer=%d on date=%s: %v", req.TrainerID, req.Date, err)
		} else {
			s.logger.Error("Create: failed for trainer=%d: %v", req.TrainerID, err)
		}
		return nil, err
	}

	s.logger.Info("Create: successfully created session id=%d for trainer=%d", created.ID, req.TrainerID)
	return models.FromDomainSession(created), nil
}

// GetByID получает сессию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SessionResponse, error) {
	s.logger.Info("GetByID: fetching session id=%d", id)

	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			s.logger.Warn("GetByID: session id=%d not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("GetByID: repository error for session id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched session id=%d", id)
	return models.FromDomainSession(session), nil
}

// UpdateCapacity меняет вместимость сессии
// Нельзя опустить вместимость ниже числа уже занятых мест
func (s *Service) UpdateCapacity(ctx context.Context, id int64, capacity int) (*models.SessionResponse, error) {
	s.logger.Info("UpdateCapacity: updating session id=%d to capacity=%d", id, capacity)

	if capacity < domain.MinSessionCapacity || capacity > domain.MaxSessionCapacity {
		s.logger.Warn("UpdateCapacity: capacity=%d out of range for session id=%d", capacity, id)
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSessionCapacity, domain.MaxSessionCapacity)
	}

	session, err := s.sessionRepo.UpdateCapacity(ctx, id, capacity)
	if err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			s.logger.Warn("UpdateCapacity: session id=%d not found", id)
			return nil, ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrCapacityBelowOccupancy):
			s.logger.Warn("UpdateCapacity: capacity=%d below occupancy for session id=%d", capacity, id)
			return nil, ErrCapacityBelowOccupancy
		default:
			s.logger.Error("UpdateCapacity: repository error for session id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateCapacity - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("UpdateCapacity: successfully updated session id=%d to capacity=%d", id, capacity)
	return models.FromDomainSession(session), nil
}

// Close закрывает сессию для новых бронирований
// Сессия с занятыми местами не закрывается
func (s *Service) Close(ctx context.Context, id int64) error {
	s.logger.Info("Close: closing session id=%d", id)

	if err := s.sessionRepo.Close(ctx, id); err != nil {
		switch {
		case errors.Is(err, sessionRepo.ErrSessionNotFound):
			s.logger.Warn("Close: session id=%d not found", id)
			return ErrSessionNotFound
		case errors.Is(err, sessionRepo.ErrSessionOccupied):
			s.logger.Warn("Close: session id=%d has confirmed reservations", id)
			return ErrSessionOccupied
		default:
			s.logger.Error("Close: repository error for session id=%d: %v", id, err)
			return fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Close: successfully closed session id=%d", id)
	return nil
}

// buildSession валидирует запрос и собирает domain.Session
func (s *Service) buildSession(req *models.CreateSessionRequest) (*domain.Session, error) {
	if req.TrainerID <= 0 {
		return nil, fmt.Errorf("%w: trainer_id is required", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrInvalidInput, req.Date)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start_time %q", ErrInvalidInput, req.StartTime)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end_time %q", ErrInvalidInput, req.EndTime)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrInvalidInput)
	}

	capacity := s.defaultCapacity
	if req.Capacity != nil {
		capacity = *req.Capacity
	}
	if capacity < domain.MinSessionCapacity || capacity > domain.MaxSessionCapacity {
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSessionCapacity, domain.MaxSessionCapacity)
	}

	return &domain.Session{
		TrainerID: req.TrainerID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  capacity,
	}, nil
}
