package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPendiente  PaymentStatus = "PENDIENTE"
	PaymentCompletado PaymentStatus = "COMPLETADO"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Payment платёж, привязанный к подтверждённому бронированию
// Ядро бронирования его не валидирует сверх существования бронирования -
// это пассивная учетная запись для внешнего платёжного коллаборатора
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        float64
	Method        PaymentMethod
	Status        PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted возвращает true для завершённого платежа
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompletado
}

// ValidPaymentMethod проверяет, что строка является известным способом оплаты
func ValidPaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodTransfer:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}
