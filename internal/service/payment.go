package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/logger"
)

const confirmationSubject = "TutorMatch - Booking Confirmed"

var paymentMethodRe = regexp.MustCompile(`^[a-z][a-z0-9_]{1,31}$`)

type PaymentService struct {
	bookingRepo  ports.BookingRepo
	paymentRepo  ports.PaymentRepo
	notifier     ports.Notifier
	storeTimeout time.Duration
	logger       logger.Logger
}

func NewPaymentService(
	bookingRepo ports.BookingRepo,
	paymentRepo ports.PaymentRepo,
	notifier ports.Notifier,
	storeTimeout time.Duration,
	logger logger.Logger,
) *PaymentService {
	return &PaymentService{
		bookingRepo:  bookingRepo,
		paymentRepo:  paymentRepo,
		notifier:     notifier,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

// ProcessPayment records a completed payment and confirms its booking at most once.
// The booking transition is a guarded write on PendingPayment; a request that loses the
// race gets domain.ErrAlreadyFinalized and its payment is marked failed. A confirm that
// ends in a store error is read back before its payment is compensated.
func (s *PaymentService) ProcessPayment(ctx context.Context, in domain.ProcessPaymentInput) (*domain.PaymentResult, error) {
	if err := validatePaymentInput(&in); err != nil {
		return nil, err
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	booking, err := s.bookingRepo.GetByID(tctx, in.BookingID)
	cancel()
	if err != nil {
		return nil, storeErr("get booking", err)
	}

	if booking.Status != domain.BookingStatusPendingPayment {
		return nil, fmt.Errorf("booking %s is %s: %w", booking.ID, booking.Status, domain.ErrAlreadyFinalized)
	}

	amount := booking.TotalPrice
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: booking amount %s is negative", domain.ErrValidationFailed, amount)
	}
	if in.Amount != nil && !in.Amount.Equal(amount) {
		return nil, fmt.Errorf("%w: amount %s does not match booking total %s",
			domain.ErrValidationFailed, in.Amount.String(), amount.String())
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		ID:        uuid.New().String(),
		BookingID: booking.ID,
		Amount:    amount,
		Method:    in.Method,
		Contact:   in.Contact,
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: now,
	}

	tctx, cancel = withStoreTimeout(ctx, s.storeTimeout)
	err = s.paymentRepo.Create(tctx, payment)
	cancel()
	if errors.Is(err, domain.ErrAlreadyFinalized) {
		if err = s.reclaim(ctx, booking.ID); err == nil {
			tctx, cancel = withStoreTimeout(ctx, s.storeTimeout)
			err = s.paymentRepo.Create(tctx, payment)
			cancel()
		}
	}
	if err != nil {
		return nil, storeErr("create payment", err)
	}

	upd := domain.BookingUpdate{
		Status:    domain.BookingStatusConfirmed,
		PaymentID: &payment.ID,
		UpdatedAt: now,
	}

	tctx, cancel = withStoreTimeout(ctx, s.storeTimeout)
	err = s.bookingRepo.ConditionalUpdate(tctx, booking.ID, domain.BookingStatusPendingPayment, upd)
	cancel()
	if errors.Is(err, domain.ErrConditionFailed) {
		s.markFailed(ctx, payment)
		s.logger.Warn("concurrent payment lost the confirmation race",
			logger.String("booking_id", booking.ID),
			logger.String("payment_id", payment.ID),
		)
		return nil, fmt.Errorf("confirm booking %s: %w", booking.ID, domain.ErrAlreadyFinalized)
	}
	if err != nil {
		if err = s.resolveConfirm(ctx, booking.ID, payment, err); err != nil {
			return nil, err
		}
	}
	upd.Apply(booking)

	s.logger.Info("booking confirmed",
		logger.String("booking_id", booking.ID),
		logger.String("payment_id", payment.ID),
		logger.String("amount", payment.Amount.String()),
		logger.String("method", payment.Method),
	)

	// state is durable at this point; delivery outcome never changes it
	s.notifier.Notify(context.WithoutCancel(ctx), confirmationNotification(booking, payment))

	return &domain.PaymentResult{
		PaymentID: payment.ID,
		BookingID: booking.ID,
		Amount:    payment.Amount,
		Status:    payment.Status,
	}, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: payment id is required", domain.ErrInvalidArgument)
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	p, err := s.paymentRepo.GetByID(tctx, id)
	if err != nil {
		return nil, storeErr("get payment", err)
	}
	return p, nil
}

// resolveConfirm decides the outcome of a guarded confirm whose reply was lost.
// The write may have been applied, so the booking is read back before the payment
// is compensated. It returns nil when the booking is confirmed by p.
func (s *PaymentService) resolveConfirm(ctx context.Context, bookingID string, p *domain.Payment, cause error) error {
	tctx, cancel := withStoreTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	current, err := s.bookingRepo.GetByID(tctx, bookingID)
	cancel()
	if err != nil {
		// outcome unknown: the payment stays completed until reclaim or the expiry sweep releases it
		s.logger.Error("confirm outcome unknown",
			logger.String("booking_id", bookingID),
			logger.String("payment_id", p.ID),
			logger.String("confirm_error", cause.Error()),
			logger.String("error", err.Error()),
		)
		return storeErr("confirm booking", cause)
	}

	switch {
	case current.Status == domain.BookingStatusConfirmed && current.PaymentID != nil && *current.PaymentID == p.ID:
		s.logger.Warn("confirm reply lost after the write was applied",
			logger.String("booking_id", bookingID),
			logger.String("payment_id", p.ID),
			logger.String("error", cause.Error()),
		)
		return nil
	case current.Status == domain.BookingStatusPendingPayment:
		s.markFailed(ctx, p)
		return storeErr("confirm booking", cause)
	default:
		s.markFailed(ctx, p)
		return fmt.Errorf("booking %s is %s: %w", bookingID, current.Status, domain.ErrAlreadyFinalized)
	}
}

// reclaim runs when a completed payment already holds the booking. A holder younger
// than orphanAge may still confirm, so the request reports AlreadyFinalized. An older
// holder on a pending booking is left over from a failed compensation and is released.
// It returns nil when the booking can be paid again.
func (s *PaymentService) reclaim(ctx context.Context, bookingID string) error {
	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	current, err := s.bookingRepo.GetByID(tctx, bookingID)
	if err != nil {
		return err
	}
	if current.Status != domain.BookingStatusPendingPayment {
		return fmt.Errorf("booking %s is %s: %w", bookingID, current.Status, domain.ErrAlreadyFinalized)
	}

	payments, err := s.paymentRepo.ListByBookings(tctx, []string{bookingID})
	if err != nil {
		return err
	}

	maxAge := s.orphanAge()
	for _, p := range payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}
		if time.Since(p.CreatedAt) < maxAge {
			return fmt.Errorf("booking %s has payment %s in progress: %w", bookingID, p.ID, domain.ErrAlreadyFinalized)
		}
		if err = s.paymentRepo.MarkFailed(tctx, p.ID); err != nil {
			return err
		}
		s.logger.Warn("released orphaned completed payment",
			logger.String("booking_id", bookingID),
			logger.String("payment_id", p.ID),
		)
	}
	return nil
}

// ReleaseOrphans marks completed payments of bookings that were never confirmed as failed.
func (s *PaymentService) ReleaseOrphans(ctx context.Context, bookings []*domain.Booking) error {
	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		if b.Status != domain.BookingStatusConfirmed {
			ids = append(ids, b.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	payments, err := s.paymentRepo.ListByBookings(tctx, ids)
	if err != nil {
		return storeErr("list payments", err)
	}

	for _, p := range payments {
		if p.Status != domain.PaymentStatusCompleted {
			continue
		}
		if err = s.paymentRepo.MarkFailed(tctx, p.ID); err != nil {
			return storeErr("mark payment failed", err)
		}
		s.logger.Warn("released completed payment of unconfirmed booking",
			logger.String("booking_id", p.BookingID),
			logger.String("payment_id", p.ID),
		)
	}
	return nil
}

// orphanAge bounds how long a request can still confirm with a payment it created:
// the create, confirm, read-back and compensation calls each get one store timeout.
func (s *PaymentService) orphanAge() time.Duration {
	d := s.storeTimeout
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return 4 * d
}

// markFailed runs even when the request context is already done.
func (s *PaymentService) markFailed(ctx context.Context, p *domain.Payment) {
	tctx, cancel := withStoreTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	if err := s.paymentRepo.MarkFailed(tctx, p.ID); err != nil {
		s.logger.Error("failed to mark payment as failed",
			logger.String("payment_id", p.ID),
			logger.String("booking_id", p.BookingID),
			logger.String("error", err.Error()),
		)
		return
	}
	p.Status = domain.PaymentStatusFailed
}

func validatePaymentInput(in *domain.ProcessPaymentInput) error {
	in.BookingID = strings.TrimSpace(in.BookingID)
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	in.Contact = strings.TrimSpace(in.Contact)

	if in.BookingID == "" {
		return fmt.Errorf("%w: booking_id is required", domain.ErrInvalidArgument)
	}
	if !paymentMethodRe.MatchString(in.Method) {
		return fmt.Errorf("%w: malformed payment method %q", domain.ErrValidationFailed, in.Method)
	}
	if in.Contact == "" {
		return fmt.Errorf("%w: payer contact is required", domain.ErrValidationFailed)
	}
	return nil
}

func confirmationNotification(b *domain.Booking, p *domain.Payment) domain.Notification {
	body := fmt.Sprintf(
		"Booking Confirmed!\n"+
			"Tutor: %s\n"+
			"Subject: %s\n"+
			"Date & Time: %s %s\n"+
			"Total Paid: $%s\n"+
			"Session Format: %s\n"+
			"Payment ID: %s",
		tutorLabel(b), b.Subject, b.Date, b.Time,
		p.Amount.StringFixed(2), b.SessionFormat, p.ID,
	)
	return domain.Notification{
		Contact: p.Contact,
		Subject: confirmationSubject,
		Body:    body,
	}
}

func tutorLabel(b *domain.Booking) string {
	if b.TutorName != "" {
		return b.TutorName
	}
	return b.TutorID
}
