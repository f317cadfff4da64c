package dto

import "github.com/shopspring/decimal"

type CreateBookingRequest struct {
	StudentID     string `json:"student_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	Time          string `json:"time" binding:"required"`
	Subject       string `json:"subject" binding:"required"`
	SessionsCount *int   `json:"sessions_count"`
	SessionType   string `json:"session_type"`
	SessionFormat string `json:"session_format"`
	LearningGoals string `json:"learning_goals"`
}

type ProcessPaymentRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	PayerContact  string `json:"payer_contact"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	// Amount is optional. When set it must equal the booking's total price.
	Amount *decimal.Decimal `json:"amount"`
}

// Contact picks the explicit contact, then e-mail, then phone.
func (r ProcessPaymentRequest) Contact() string {
	switch {
	case r.PayerContact != "":
		return r.PayerContact
	case r.Email != "":
		return r.Email
	default:
		return r.Phone
	}
}
