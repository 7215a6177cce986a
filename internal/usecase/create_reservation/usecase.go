package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	sessionRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/session"
)

// UseCase use case создания бронирования
// Единственное место системы, где выдаются токены занятости:
// проверка пересечений, захват места и запись бронирования выполняются
// в одной сериализуемой транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	sessionLedger   SessionLedger
	notifyClient    NotifyClient
	txManager       TransactionManager
	defaultStatus   domain.ReservationStatus
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	sessionLedger SessionLedger,
	notifyClient NotifyClient,
	txManager TransactionManager,
	defaultStatus domain.ReservationStatus,
	logger Logger,
) *UseCase {
	if !domain.ValidInitialStatus(defaultStatus) {
		defaultStatus = domain.StatusPendiente
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		sessionLedger:   sessionLedger,
		notifyClient:    notifyClient,
		txManager:       txManager,
		defaultStatus:   defaultStatus,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Порядок внутри транзакции фиксирован и не может быть переставлен
// для одной сессии без потери гарантии отсутствия overbooking:
//  1. advisory lock клиента - сериализует конкурентные создания одного
//     клиента, чтобы два пересекающихся бронирования не проскочили
//     друг мимо друга
//  2. скан пересечений по снимку, сделанному до выдачи токена
//  3. TryOccupy - атомарная проверка-и-инкремент вместимости
//  4. запись бронирования; при её сбое захваченное место возвращается
//     компенсирующим Release до всплытия ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: client=%d, session=%d", req.ClientID, req.SessionID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	status := uc.defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Сериализуем конкурентные создания этого клиента
		if err := uc.reservationRepo.AcquireClientLock(txCtx, req.ClientID); err != nil {
			uc.logger.Error("CreateReservation: failed to acquire client lock: %v", err)
			return fmt.Errorf("%w: failed to acquire client lock: %v", ErrInternal, err)
		}

		session, err := uc.sessionLedger.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("CreateReservation: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("CreateReservation: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		if session.Closed {
			uc.logger.Warn("CreateReservation: session id=%d is closed", req.SessionID)
			return ErrSessionClosed
		}

		// Снимок активных бронирований клиента на дату сессии сделан
		// под advisory lock, строго до выдачи токена занятости
		existing, err := uc.reservationRepo.GetActiveByClientAndDate(txCtx, req.ClientID, session.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get client reservations: %v", err)
			return fmt.Errorf("%w: failed to get client reservations: %v", ErrInternal, err)
		}

		if conflict := findOverlap(session, existing); conflict != nil {
			uc.logger.Warn("CreateReservation: schedule conflict for client=%d: reservation id=%d (%s-%s) overlaps session id=%d (%s-%s)",
				req.ClientID, conflict.ID, conflict.SessionStartTime, conflict.SessionEndTime,
				session.ID, session.StartTime, session.EndTime)
			return ErrScheduleConflict
		}

		// Атомарная проверка-и-инкремент вместимости
		token, err := uc.sessionLedger.TryOccupy(txCtx, req.SessionID)
		if err != nil {
			switch {
			case errors.Is(err, sessionRepo.ErrSessionFull):
				uc.logger.Warn("CreateReservation: session id=%d is full (%d/%d)",
					req.SessionID, session.ConfirmedCount, session.Capacity)
				return ErrCapacityExceeded
			case errors.Is(err, sessionRepo.ErrSessionClosed):
				return ErrSessionClosed
			case errors.Is(err, sessionRepo.ErrSessionNotFound):
				return ErrSessionNotFound
			default:
				uc.logger.Error("CreateReservation: TryOccupy failed for session id=%d: %v", req.SessionID, err)
				return fmt.Errorf("%w: failed to occupy session: %v", ErrInternal, err)
			}
		}

		reservation := &domain.Reservation{
			ClientID:  req.ClientID,
			SessionID: req.SessionID,
			Status:    status,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			// Компенсация: неудавшееся создание не должно удерживать место
			if relErr := uc.sessionLedger.Release(txCtx, token.SessionID); relErr != nil {
				uc.logger.Error("CreateReservation: compensating release failed for session id=%d: %v",
					token.SessionID, relErr)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = &Response{
			ID:               created.ID,
			ClientID:         created.ClientID,
			SessionID:        created.SessionID,
			Status:           created.Status,
			SessionDate:      session.Date,
			SessionStartTime: session.StartTime,
			SessionEndTime:   session.EndTime,
			CreatedAt:        created.CreatedAt,
			UpdatedAt:        created.UpdatedAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d (client=%d, session=%d, status=%s)",
		result.ID, result.ClientID, result.SessionID, result.Status)

	// Уведомление отправляется асинхронно и не влияет на результат бронирования
	go uc.notifyClient.ReservationCreated(context.WithoutCancel(ctx), &domain.Reservation{
		ID:        result.ID,
		ClientID:  result.ClientID,
		SessionID: result.SessionID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	})

	return result, nil
}
