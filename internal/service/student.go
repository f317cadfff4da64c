package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
)

const sessionConfirmedTitle = "Session Confirmed"

// StudentService builds the dashboard view. It only reads.
type StudentService struct {
	bookingRepo  ports.BookingRepo
	paymentRepo  ports.PaymentRepo
	storeTimeout time.Duration
}

func NewStudentService(bookingRepo ports.BookingRepo, paymentRepo ports.PaymentRepo, storeTimeout time.Duration) *StudentService {
	return &StudentService{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		storeTimeout: storeTimeout,
	}
}

func (s *StudentService) GetStudentData(ctx context.Context, studentID string) (*domain.StudentData, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: student id is required", domain.ErrInvalidArgument)
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	bookings, err := s.bookingRepo.ListByStudent(tctx, studentID)
	cancel()
	if err != nil {
		return nil, storeErr("list bookings", err)
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		return newerFirst(bookings[i].CreatedAt, bookings[j].CreatedAt, bookings[i].ID, bookings[j].ID)
	})

	data := &domain.StudentData{
		StudentID:     studentID,
		Bookings:      bookings,
		Payments:      []*domain.Payment{},
		Notifications: []domain.NotificationEntry{},
	}
	if len(bookings) == 0 {
		data.Bookings = []*domain.Booking{}
		return data, nil
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
		if b.Status == domain.BookingStatusConfirmed {
			data.Notifications = append(data.Notifications, confirmedEntry(b))
		}
	}

	tctx, cancel = withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()
	payments, err := s.paymentRepo.ListByBookings(tctx, ids)
	if err != nil {
		return nil, storeErr("list payments", err)
	}
	sort.SliceStable(payments, func(i, j int) bool {
		return newerFirst(payments[i].CreatedAt, payments[j].CreatedAt, payments[i].ID, payments[j].ID)
	})
	if payments != nil {
		data.Payments = payments
	}

	return data, nil
}

func confirmedEntry(b *domain.Booking) domain.NotificationEntry {
	return domain.NotificationEntry{
		BookingID: b.ID,
		Title:     sessionConfirmedTitle,
		Message: fmt.Sprintf("Your %s session with %s on %s at %s is confirmed.",
			b.Subject, tutorLabel(b), b.Date, b.Time),
		CreatedAt: b.UpdatedAt,
	}
}

func newerFirst(a, b time.Time, aID, bID string) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return aID < bID
}
