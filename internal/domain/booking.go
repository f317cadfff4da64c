package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPendingPayment BookingStatus = "pending_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusExpired        BookingStatus = "expired"
)

const (
	DefaultSessionType   = "Single Session"
	DefaultSessionFormat = "Online Video Call"
)

// Terminal reports whether no further transition is allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusExpired
}

type Booking struct {
	ID            string          `json:"booking_id"`
	TutorID       string          `json:"tutor_id"`
	TutorName     string          `json:"tutor_name"`
	StudentID     string          `json:"student_id"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Subject       string          `json:"subject"`
	SessionType   string          `json:"session_type"`
	SessionFormat string          `json:"session_format"`
	LearningGoals string          `json:"learning_goals"`
	SessionsCount int             `json:"sessions_count"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Status        BookingStatus   `json:"status"`
	PaymentID     *string         `json:"payment_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookingUpdate is the set of fields a guarded booking write may change.
type BookingUpdate struct {
	Status    BookingStatus
	PaymentID *string
	UpdatedAt time.Time
}

// Apply copies the update onto b.
func (u BookingUpdate) Apply(b *Booking) {
	b.Status = u.Status
	if u.PaymentID != nil {
		id := *u.PaymentID
		b.PaymentID = &id
	}
	b.UpdatedAt = u.UpdatedAt
}

type CreateBookingInput struct {
	TutorID       string
	StudentID     string
	Date          string
	Time          string
	Subject       string
	SessionsCount int
	SessionType   string
	SessionFormat string
	LearningGoals string
}
