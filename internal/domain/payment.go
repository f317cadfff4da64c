package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID        string          `json:"payment_id"`
	BookingID string          `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"payment_method"`
	Contact   string          `json:"payer_contact"`
	Status    PaymentStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type ProcessPaymentInput struct {
	BookingID string
	Method    string
	Contact   string
	// Amount is what the client expects to pay. Nil skips the check.
	Amount *decimal.Decimal
}

type PaymentResult struct {
	PaymentID string
	BookingID string
	Amount    decimal.Decimal
	Status    PaymentStatus
}
