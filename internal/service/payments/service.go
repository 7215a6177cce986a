package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FTM-BookingService/internal/domain"
	paymentRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/payment"
	reservationRepo "github.com/m04kA/FTM-BookingService/internal/infra/storage/reservation"
	"github.com/m04kA/FTM-BookingService/internal/service/payments/models"
)

// Service сервис учёта платежей по бронированиям
// Не проводит платежи сам - фиксирует факт оплаты от внешнего коллаборатора
type Service struct {
	paymentRepo     PaymentRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	reservationRepo ReservationRepository,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

// Create привязывает платёж к бронированию
// Бронирование должно существовать и быть в статусе CONFIRMADA
func (s *Service) Create(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentResponse, error) {
	s.logger.Info("Create: creating payment for reservation=%d amount=%.2f method=%s",
		req.ReservationID, req.Amount, req.Method)

	if req.Amount <= 0 {
		s.logger.Warn("Create: non-positive amount=%.2f for reservation=%d", req.Amount, req.ReservationID)
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	method, ok := domain.ValidPaymentMethod(req.Method)
	if !ok {
		s.logger.Warn("Create: unknown method=%s for reservation=%d", req.Method, req.ReservationID)
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Create: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("Create: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if reservation.Status != domain.StatusConfirmada {
		s.logger.Warn("Create: reservation id=%d has status=%s, payment requires CONFIRMADA",
			req.ReservationID, reservation.Status)
		return nil, fmt.Errorf("%w: reservation status is %s", ErrReservationNotConfirmed, reservation.Status)
	}

	payment, err := s.paymentRepo.Create(ctx, &domain.Payment{
		ReservationID: req.ReservationID,
		Amount:        req.Amount,
		Method:        method,
		Status:        domain.PaymentPendiente,
	})
	if err != nil {
		s.logger.Error("Create: repository error for reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created payment id=%d for reservation=%d", payment.ID, req.ReservationID)
	return models.FromDomainPayment(payment), nil
}

// Complete отмечает платёж завершённым
// Повторное завершение - идемпотентный no-op
func (s *Service) Complete(ctx context.Context, paymentID int64) (*models.PaymentResponse, error) {
	s.logger.Info("Complete: completing payment id=%d", paymentID)

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Complete: payment id=%d not found", paymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Complete: repository error for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	if payment.IsCompleted() {
		s.logger.Info("Complete: payment id=%d already completed, nothing to do", paymentID)
		return models.FromDomainPayment(payment), nil
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, domain.PaymentCompletado); err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Complete: payment id=%d not found during update", paymentID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Complete: repository error for payment id=%d: %v", paymentID, err)
		return nil, fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
	}

	payment.Status = domain.PaymentCompletado
	s.logger.Info("Complete: successfully completed payment id=%d", paymentID)
	return models.FromDomainPayment(payment), nil
}

// GetByReservation получает платежи бронирования
func (s *Service) GetByReservation(ctx context.Context, reservationID int64) (*models.PaymentListResponse, error) {
	s.logger.Info("GetByReservation: fetching payments for reservation=%d", reservationID)

	payments, err := s.paymentRepo.GetByReservationID(ctx, reservationID)
	if err != nil {
		s.logger.Error("GetByReservation: repository error for reservation=%d: %v", reservationID, err)
		return nil, fmt.Errorf("%w: GetByReservation - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByReservation: successfully fetched %d payments for reservation=%d", len(payments), reservationID)
	return models.FromDomainPaymentList(payments), nil
}
