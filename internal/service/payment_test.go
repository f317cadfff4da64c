package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func pendingBooking() *domain.Booking {
	now := time.Now().UTC()
	return &domain.Booking{
		ID:            "b1",
		TutorID:       "t1",
		TutorName:     "Priya Sharma",
		StudentID:     "s1",
		Date:          "2025-03-10",
		Time:          "10:00",
		Subject:       "Mathematics",
		SessionType:   domain.DefaultSessionType,
		SessionFormat: domain.DefaultSessionFormat,
		SessionsCount: 2,
		TotalPrice:    decimal.RequireFromString("60"),
		Status:        domain.BookingStatusPendingPayment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func paymentInput() domain.ProcessPaymentInput {
	return domain.ProcessPaymentInput{
		BookingID: "b1",
		Method:    "credit_card",
		Contact:   "a@example.com",
	}
}

type paymentMocks struct {
	bookings *mocks.MockBookingRepo
	payments *mocks.MockPaymentRepo
	notifier *mocks.MockNotifier
	svc      *PaymentService
}

func newPaymentMocks(t *testing.T) paymentMocks {
	m := paymentMocks{
		bookings: mocks.NewMockBookingRepo(t),
		payments: mocks.NewMockPaymentRepo(t),
		notifier: mocks.NewMockNotifier(t),
	}
	m.svc = NewPaymentService(m.bookings, m.payments, m.notifier, time.Second, newTestLogger(t))
	return m
}

func TestPaymentService_ProcessPayment_Success(t *testing.T) {
	m := newPaymentMocks(t)

	var stored *domain.Payment
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*domain.Payment")).
		Run(func(_ context.Context, p *domain.Payment) { stored = p }).
		Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", domain.BookingStatusPendingPayment,
			mock.MatchedBy(func(u domain.BookingUpdate) bool {
				return u.Status == domain.BookingStatusConfirmed && u.PaymentID != nil && *u.PaymentID == stored.ID
			})).
		Return(nil)
	m.notifier.EXPECT().
		Notify(mock.Anything, mock.MatchedBy(func(n domain.Notification) bool {
			return n.Contact == "a@example.com" &&
				n.Subject == "TutorMatch - Booking Confirmed" &&
				strings.Contains(n.Body, "Priya Sharma") &&
				strings.Contains(n.Body, "Total Paid: $60.00")
		})).
		Return()

	res, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	require.NoError(t, err)
	assert.Equal(t, stored.ID, res.PaymentID)
	assert.Equal(t, "b1", res.BookingID)
	assert.True(t, decimal.RequireFromString("60").Equal(res.Amount))
	assert.Equal(t, domain.PaymentStatusCompleted, res.Status)
	assert.Equal(t, "credit_card", stored.Method)
}

func TestPaymentService_ProcessPayment_NotifiesWithDetachedContext(t *testing.T) {
	m := newPaymentMocks(t)

	ctx, cancel := context.WithCancel(context.Background())

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).Return(nil)
	m.notifier.EXPECT().
		Notify(mock.Anything, mock.Anything).
		Run(func(nctx context.Context, _ domain.Notification) {
			cancel()
			assert.NoError(t, nctx.Err())
		}).
		Return()

	_, err := m.svc.ProcessPayment(ctx, paymentInput())
	require.NoError(t, err)
}

func TestPaymentService_ProcessPayment_BookingNotFound(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "unknown-id").Return(nil, domain.ErrBookingNotFound)

	in := paymentInput()
	in.BookingID = "unknown-id"
	_, err := m.svc.ProcessPayment(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestPaymentService_ProcessPayment_AlreadyFinalized(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingStatusConfirmed, domain.BookingStatusExpired} {
		t.Run(string(status), func(t *testing.T) {
			m := newPaymentMocks(t)

			b := pendingBooking()
			b.Status = status
			m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(b, nil)

			_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

			assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
		})
	}
}

func TestPaymentService_ProcessPayment_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *domain.ProcessPaymentInput)
		wantErr error
	}{
		{"blank booking id", func(in *domain.ProcessPaymentInput) { in.BookingID = " " }, domain.ErrInvalidArgument},
		{"blank method", func(in *domain.ProcessPaymentInput) { in.Method = "" }, domain.ErrValidationFailed},
		{"malformed method", func(in *domain.ProcessPaymentInput) { in.Method = "card; drop" }, domain.ErrValidationFailed},
		{"blank contact", func(in *domain.ProcessPaymentInput) { in.Contact = "  " }, domain.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPaymentMocks(t)

			in := paymentInput()
			tt.mutate(&in)
			_, err := m.svc.ProcessPayment(context.Background(), in)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentService_ProcessPayment_MethodIsNormalized(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool { return p.Method == "paypal" })).
		Return(nil)
	m.bookings.EXPECT().ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).Return(nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return()

	in := paymentInput()
	in.Method = " PayPal "
	_, err := m.svc.ProcessPayment(context.Background(), in)

	require.NoError(t, err)
}

func TestPaymentService_ProcessPayment_AmountMismatch(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)

	in := paymentInput()
	wrong := decimal.RequireFromString("59.99")
	in.Amount = &wrong
	_, err := m.svc.ProcessPayment(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestPaymentService_ProcessPayment_AmountMatches(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).Return(nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return()

	in := paymentInput()
	same := decimal.RequireFromString("60.00")
	in.Amount = &same
	_, err := m.svc.ProcessPayment(context.Background(), in)

	require.NoError(t, err)
}

func TestPaymentService_ProcessPayment_LostRace(t *testing.T) {
	m := newPaymentMocks(t)

	var stored *domain.Payment
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().
		Create(mock.Anything, mock.Anything).
		Run(func(_ context.Context, p *domain.Payment) { stored = p }).
		Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(domain.ErrConditionFailed)
	m.payments.EXPECT().
		MarkFailed(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id string) error {
			assert.Equal(t, stored.ID, id)
			return nil
		})

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
	assert.NotErrorIs(t, err, domain.ErrConditionFailed)
}

func TestPaymentService_ProcessPayment_DuplicateCompletedPayment(t *testing.T) {
	m := newPaymentMocks(t)

	holder := &domain.Payment{ID: "p-other", BookingID: "b1", Status: domain.PaymentStatusCompleted, CreatedAt: time.Now().UTC()}

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized).Once()
	m.payments.EXPECT().ListByBookings(mock.Anything, []string{"b1"}).Return([]*domain.Payment{holder}, nil)

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestPaymentService_ProcessPayment_DuplicateOnConfirmedBooking(t *testing.T) {
	m := newPaymentMocks(t)

	confirmed := pendingBooking()
	confirmed.Status = domain.BookingStatusConfirmed

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized).Once()
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(confirmed, nil).Once()

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestPaymentService_ProcessPayment_ReclaimsStaleCompletedPayment(t *testing.T) {
	m := newPaymentMocks(t)

	stale := &domain.Payment{
		ID:        "p-stale",
		BookingID: "b1",
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized).Once()
	m.payments.EXPECT().ListByBookings(mock.Anything, []string{"b1"}).Return([]*domain.Payment{stale}, nil)
	m.payments.EXPECT().MarkFailed(mock.Anything, "p-stale").Return(nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()
	m.bookings.EXPECT().ConditionalUpdate(mock.Anything, "b1", domain.BookingStatusPendingPayment, mock.Anything).Return(nil)
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return()

	res, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	require.NoError(t, err)
	assert.NotEqual(t, "p-stale", res.PaymentID)
}

func TestPaymentService_ProcessPayment_ReclaimReadFails(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(domain.ErrAlreadyFinalized).Once()
	m.payments.EXPECT().ListByBookings(mock.Anything, mock.Anything).Return(nil, errors.New("connection reset"))

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrTransientStore)
}

func TestPaymentService_ProcessPayment_ConfirmAppliedDespiteError(t *testing.T) {
	m := newPaymentMocks(t)

	var stored *domain.Payment
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	m.payments.EXPECT().
		Create(mock.Anything, mock.Anything).
		Run(func(_ context.Context, p *domain.Payment) { stored = p }).
		Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded)
	m.bookings.EXPECT().
		GetByID(mock.Anything, "b1").
		RunAndReturn(func(context.Context, string) (*domain.Booking, error) {
			b := pendingBooking()
			b.Status = domain.BookingStatusConfirmed
			b.PaymentID = &stored.ID
			return b, nil
		}).Once()
	m.notifier.EXPECT().Notify(mock.Anything, mock.Anything).Return()

	res, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	require.NoError(t, err)
	assert.Equal(t, stored.ID, res.PaymentID)
	assert.Equal(t, domain.PaymentStatusCompleted, res.Status)
}

func TestPaymentService_ProcessPayment_ConfirmOutcomeUnknown(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded)
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(nil, errors.New("connection refused")).Once()

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrTransientStore)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPaymentService_ProcessPayment_ConfirmErrorBookingTakenByOther(t *testing.T) {
	m := newPaymentMocks(t)

	other := "p-other"
	taken := pendingBooking()
	taken.Status = domain.BookingStatusConfirmed
	taken.PaymentID = &other

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(errors.New("i/o timeout"))
	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(taken, nil).Once()
	m.payments.EXPECT().MarkFailed(mock.Anything, mock.Anything).Return(nil)

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrAlreadyFinalized)
}

func TestPaymentService_ReleaseOrphans(t *testing.T) {
	m := newPaymentMocks(t)

	expired := pendingBooking()
	expired.Status = domain.BookingStatusExpired
	confirmed := pendingBooking()
	confirmed.ID = "b2"
	confirmed.Status = domain.BookingStatusConfirmed

	m.payments.EXPECT().ListByBookings(mock.Anything, []string{"b1"}).Return([]*domain.Payment{
		{ID: "p1", BookingID: "b1", Status: domain.PaymentStatusCompleted},
		{ID: "p2", BookingID: "b1", Status: domain.PaymentStatusFailed},
	}, nil)
	m.payments.EXPECT().MarkFailed(mock.Anything, "p1").Return(nil)

	err := m.svc.ReleaseOrphans(context.Background(), []*domain.Booking{expired, confirmed})
	require.NoError(t, err)

	assert.NoError(t, m.svc.ReleaseOrphans(context.Background(), nil))
}

func TestPaymentService_ProcessPayment_ConfirmFailsClosed(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(context.DeadlineExceeded)
	m.payments.EXPECT().MarkFailed(mock.Anything, mock.Anything).Return(nil)

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrTransientStore)
}

func TestPaymentService_ProcessPayment_CompensationFailureStillReported(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
	m.bookings.EXPECT().
		ConditionalUpdate(mock.Anything, "b1", mock.Anything, mock.Anything).
		Return(errors.New("connection refused"))
	m.payments.EXPECT().MarkFailed(mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrTransientStore)
}

func TestPaymentService_ProcessPayment_PaymentStoreTimeout(t *testing.T) {
	m := newPaymentMocks(t)

	m.bookings.EXPECT().GetByID(mock.Anything, "b1").Return(pendingBooking(), nil)
	m.payments.EXPECT().Create(mock.Anything, mock.Anything).Return(context.DeadlineExceeded)

	_, err := m.svc.ProcessPayment(context.Background(), paymentInput())

	assert.ErrorIs(t, err, domain.ErrTransientStore)
}

func TestPaymentService_GetPayment(t *testing.T) {
	m := newPaymentMocks(t)

	m.payments.EXPECT().GetByID(mock.Anything, "nope").Return(nil, domain.ErrPaymentNotFound)

	_, err := m.svc.GetPayment(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	_, err = m.svc.GetPayment(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
