package domain

import "time"

// Notification is a single best-effort message to a payer.
type Notification struct {
	Contact string
	Subject string
	Body    string
}

// NotificationEntry is a dashboard item derived from booking state. It is never stored.
type NotificationEntry struct {
	BookingID string    `json:"booking_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
