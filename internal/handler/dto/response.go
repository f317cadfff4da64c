package dto

import (
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

type TutorResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Subjects     []string `json:"subjects"`
	HourlyRate   string   `json:"hourly_rate"`
	Rating       float64  `json:"rating"`
	Availability string   `json:"availability"`
	Bio          string   `json:"bio,omitempty"`
}

type BookingResponse struct {
	ID            string  `json:"booking_id"`
	TutorID       string  `json:"tutor_id"`
	TutorName     string  `json:"tutor_name"`
	StudentID     string  `json:"student_id"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	Subject       string  `json:"subject"`
	SessionType   string  `json:"session_type"`
	SessionFormat string  `json:"session_format"`
	LearningGoals string  `json:"learning_goals,omitempty"`
	SessionsCount int     `json:"sessions_count"`
	TotalPrice    string  `json:"total_price"`
	Status        string  `json:"status"`
	PaymentID     *string `json:"payment_id,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type PaymentResponse struct {
	ID            string `json:"payment_id"`
	BookingID     string `json:"booking_id"`
	Amount        string `json:"amount"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type PaymentResultResponse struct {
	PaymentID string `json:"payment_id"`
	BookingID string `json:"booking_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
}

type NotificationResponse struct {
	BookingID string `json:"booking_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type StudentDashboardResponse struct {
	StudentID     string                 `json:"student_id"`
	Bookings      []BookingResponse      `json:"bookings"`
	Payments      []PaymentResponse      `json:"payments"`
	Notifications []NotificationResponse `json:"notifications"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func ToTutorResponse(t *domain.Tutor) TutorResponse {
	subjects := t.Subjects
	if subjects == nil {
		subjects = []string{}
	}
	return TutorResponse{
		ID:           t.ID,
		Name:         t.Name,
		Subjects:     subjects,
		HourlyRate:   t.HourlyRate.StringFixed(2),
		Rating:       t.Rating,
		Availability: t.Availability,
		Bio:          t.Bio,
	}
}

func ToBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		TutorID:       b.TutorID,
		TutorName:     b.TutorName,
		StudentID:     b.StudentID,
		Date:          b.Date,
		Time:          b.Time,
		Subject:       b.Subject,
		SessionType:   b.SessionType,
		SessionFormat: b.SessionFormat,
		LearningGoals: b.LearningGoals,
		SessionsCount: b.SessionsCount,
		TotalPrice:    b.TotalPrice.StringFixed(2),
		Status:        string(b.Status),
		PaymentID:     b.PaymentID,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
}

func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount.StringFixed(2),
		PaymentMethod: p.Method,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}

func ToPaymentResultResponse(r *domain.PaymentResult) PaymentResultResponse {
	return PaymentResultResponse{
		PaymentID: r.PaymentID,
		BookingID: r.BookingID,
		Amount:    r.Amount.StringFixed(2),
		Status:    string(r.Status),
	}
}

func ToStudentDashboardResponse(d *domain.StudentData) StudentDashboardResponse {
	bookings := make([]BookingResponse, 0, len(d.Bookings))
	for _, b := range d.Bookings {
		bookings = append(bookings, ToBookingResponse(b))
	}

	payments := make([]PaymentResponse, 0, len(d.Payments))
	for _, p := range d.Payments {
		payments = append(payments, ToPaymentResponse(p))
	}

	notifications := make([]NotificationResponse, 0, len(d.Notifications))
	for _, n := range d.Notifications {
		notifications = append(notifications, NotificationResponse{
			BookingID: n.BookingID,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		})
	}

	return StudentDashboardResponse{
		StudentID:     d.StudentID,
		Bookings:      bookings,
		Payments:      payments,
		Notifications: notifications,
	}
}
