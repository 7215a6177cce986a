package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	reservationRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/FTM-BookingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	sessionLedger   SessionLedger
	notifyClient    NotifyClient
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	sessionLedger SessionLedger,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		sessionLedger:   sessionLedger,
		notifyClient:    notifyClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetClientReservations получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientReservations(ctx context.Context, clientID int64, status *string) (*models.ReservationListResponse, error) {
	s.logger.Info("GetClientReservations: fetching reservations for client=%d, status=%v", clientID, status)

	var domainStatus *domain.ReservationStatus
	if status != nil {
		st, ok := domain.ValidReservationStatus(*status)
		if !ok {
			s.logger.Warn("GetClientReservations: invalid status=%s for client=%d", *status, clientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &st
	}

	reservations, err := s.reservationRepo.GetByClientID(ctx, clientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientReservations: repository error for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: GetClientReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientReservations: successfully fetched %d reservations for client=%d", len(reservations), clientID)
	return models.FromDomainReservationList(reservations), nil
}

// GetSessionReservations получает все бронирования сессии
// Используется тренером для просмотра записавшихся клиентов
func (s *Service) GetSessionReservations(ctx context.Context, sessionID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetSessionReservations: fetching reservations for session=%d", sessionID)

	reservations, err := s.reservationRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		s.logger.Error("GetSessionReservations: repository error for session=%d: %v", sessionID, err)
		return nil, fmt.Errorf("%w: GetSessionReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSessionReservations: successfully fetched %d reservations for session=%d", len(reservations), sessionID)
	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит бронирование в новый статус
// Переход CANCELADA идёт через Cancel: отмена возвращает место в сессию
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s", reservationID, req.Status)

	newStatus, ok := domain.ValidReservationStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, req.Status)
	}

	if newStatus == domain.StatusCancelada {
		return s.Cancel(ctx, reservationID)
	}

	var updated *domain.Reservation
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Таблица переходов решает всё, включая повтор того же статуса:
		// CONFIRMADA -> CONFIRMADA - недопустимый переход, не no-op
		if !reservation.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for reservation id=%d",
				reservation.Status, newStatus, reservationID)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
		}

		if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		reservation.Status = newStatus
		updated = reservation
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
		} else if !errors.Is(err, ErrInvalidTransition) {
			s.logger.Error("UpdateStatus: failed for reservation id=%d: %v", reservationID, err)
		}
		return err
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	go s.notifyClient.ReservationStatusChanged(context.WithoutCancel(ctx), updated)
	return nil
}

// Confirm переводит бронирование из PENDIENTE в CONFIRMADA
func (s *Service) Confirm(ctx context.Context, reservationID int64) error {
	return s.UpdateStatus(ctx, reservationID, &models.UpdateStatusRequest{
		Status: string(domain.StatusConfirmada),
	})
}

// Cancel отменяет бронирование и возвращает место в сессию
// Повторная отмена - идемпотентный no-op
// Смена статуса и возврат места выполняются в одной транзакции
func (s *Service) Cancel(ctx context.Context, reservationID int64) error {
	s.logger.Info("Cancel: cancelling reservation id=%d", reservationID)

	var (
		cancelled    *domain.Reservation
		alreadyFinal bool
	)
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if reservation.Status == domain.StatusCancelada {
			// Уже отменено - место возвращено ранее, второй раз не освобождаем
			alreadyFinal = true
			return nil
		}

		if err := s.reservationRepo.UpdateStatus(ctx, reservationID, domain.StatusCancelada); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Возвращаем место в сессию в той же транзакции, что и смена статуса
		if err := s.sessionLedger.Release(ctx, reservation.SessionID); err != nil {
			return fmt.Errorf("%w: Cancel - release session spot: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelada
		cancelled = reservation
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
		} else {
			s.logger.Error("Cancel: failed for reservation id=%d: %v", reservationID, err)
		}
		return err
	}

	if alreadyFinal {
		s.logger.Info("Cancel: reservation id=%d already cancelled, nothing to do", reservationID)
		return nil
	}

	s.logger.Info("Cancel: successfully cancelled reservation id=%d", reservationID)
	go s.notifyClient.ReservationStatusChanged(context.WithoutCancel(ctx), cancelled)
	return nil
}
