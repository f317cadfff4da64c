package service

import (
	"context"
	"testing"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStudentService_GetStudentData(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	paymentRepo := mocks.NewMockPaymentRepo(t)
	svc := NewStudentService(bookingRepo, paymentRepo, time.Second)

	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	pid := "p1"
	older := &domain.Booking{
		ID: "b-old", TutorName: "Priya Sharma", Subject: "Physics", Date: "2025-03-02", Time: "09:00",
		Status: domain.BookingStatusConfirmed, PaymentID: &pid,
		CreatedAt: base, UpdatedAt: base.Add(time.Minute),
	}
	newer := &domain.Booking{
		ID: "b-new", TutorID: "t2", Subject: "Chemistry",
		Status: domain.BookingStatusPendingPayment, CreatedAt: base.Add(time.Hour),
	}

	bookingRepo.EXPECT().ListByStudent(mock.Anything, "s1").Return([]*domain.Booking{older, newer}, nil)
	paymentRepo.EXPECT().
		ListByBookings(mock.Anything, mock.MatchedBy(func(ids []string) bool {
			return assert.ElementsMatch(t, []string{"b-old", "b-new"}, ids)
		})).
		Return([]*domain.Payment{
			{ID: pid, BookingID: "b-old", Amount: decimal.RequireFromString("30"), CreatedAt: base.Add(time.Minute)},
		}, nil)

	data, err := svc.GetStudentData(context.Background(), " s1 ")

	require.NoError(t, err)
	assert.Equal(t, "s1", data.StudentID)
	require.Len(t, data.Bookings, 2)
	assert.Equal(t, "b-new", data.Bookings[0].ID)
	assert.Equal(t, "b-old", data.Bookings[1].ID)
	require.Len(t, data.Payments, 1)

	require.Len(t, data.Notifications, 1)
	n := data.Notifications[0]
	assert.Equal(t, "b-old", n.BookingID)
	assert.Equal(t, "Session Confirmed", n.Title)
	assert.Equal(t, "Your Physics session with Priya Sharma on 2025-03-02 at 09:00 is confirmed.", n.Message)
	assert.Equal(t, older.UpdatedAt, n.CreatedAt)
}

func TestStudentService_GetStudentData_Empty(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	paymentRepo := mocks.NewMockPaymentRepo(t)
	svc := NewStudentService(bookingRepo, paymentRepo, time.Second)

	bookingRepo.EXPECT().ListByStudent(mock.Anything, "new").Return(nil, nil)

	data, err := svc.GetStudentData(context.Background(), "new")

	require.NoError(t, err)
	assert.NotNil(t, data.Bookings)
	assert.NotNil(t, data.Payments)
	assert.NotNil(t, data.Notifications)
	assert.Empty(t, data.Bookings)
}

func TestStudentService_GetStudentData_TieBreaksByID(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	paymentRepo := mocks.NewMockPaymentRepo(t)
	svc := NewStudentService(bookingRepo, paymentRepo, time.Second)

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	bookingRepo.EXPECT().ListByStudent(mock.Anything, "s1").Return([]*domain.Booking{
		{ID: "b2", CreatedAt: at, Status: domain.BookingStatusPendingPayment},
		{ID: "b1", CreatedAt: at, Status: domain.BookingStatusPendingPayment},
	}, nil)
	paymentRepo.EXPECT().ListByBookings(mock.Anything, mock.Anything).Return(nil, nil)

	data, err := svc.GetStudentData(context.Background(), "s1")

	require.NoError(t, err)
	assert.Equal(t, "b1", data.Bookings[0].ID)
	assert.Equal(t, "b2", data.Bookings[1].ID)
	assert.NotNil(t, data.Payments)
}

func TestStudentService_GetStudentData_Errors(t *testing.T) {
	bookingRepo := mocks.NewMockBookingRepo(t)
	paymentRepo := mocks.NewMockPaymentRepo(t)
	svc := NewStudentService(bookingRepo, paymentRepo, time.Second)

	_, err := svc.GetStudentData(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	bookingRepo.EXPECT().ListByStudent(mock.Anything, "s1").Return(nil, context.DeadlineExceeded)

	_, err = svc.GetStudentData(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrTransientStore)
}
