package domain

// StudentData is the read-side view shown on the student dashboard.
type StudentData struct {
	StudentID     string
	Bookings      []*Booking
	Payments      []*Payment
	Notifications []NotificationEntry
}
