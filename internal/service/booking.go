package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wb-go/wbf/logger"
)

const DefaultPendingTTL = 30 * time.Minute

type BookingService struct {
	bookingRepo  ports.BookingRepo
	catalog      ports.TutorCatalog
	pendingTTL   time.Duration
	storeTimeout time.Duration
	logger       logger.Logger
}

func NewBookingService(
	bookingRepo ports.BookingRepo,
	catalog ports.TutorCatalog,
	pendingTTL time.Duration,
	storeTimeout time.Duration,
	logger logger.Logger,
) *BookingService {
	if pendingTTL <= 0 {
		pendingTTL = DefaultPendingTTL
	}
	return &BookingService{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		pendingTTL:   pendingTTL,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error) {
	if err := normalizeBookingInput(&input); err != nil {
		return nil, err
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	tutor, err := s.catalog.GetTutor(tctx, input.TutorID)
	cancel()
	if err != nil {
		return nil, storeErr("get tutor", err)
	}
	if tutor.HourlyRate.IsNegative() {
		return nil, fmt.Errorf("%w: tutor %s has a negative hourly rate", domain.ErrValidationFailed, tutor.ID)
	}

	// price is fixed here; later catalog changes never touch it
	total := tutor.HourlyRate.Mul(decimal.NewFromInt(int64(input.SessionsCount)))

	now := time.Now().UTC()
	booking := &domain.Booking{
		ID:            uuid.New().String(),
		TutorID:       tutor.ID,
		TutorName:     tutor.Name,
		StudentID:     input.StudentID,
		Date:          input.Date,
		Time:          input.Time,
		Subject:       input.Subject,
		SessionType:   input.SessionType,
		SessionFormat: input.SessionFormat,
		LearningGoals: input.LearningGoals,
		SessionsCount: input.SessionsCount,
		TotalPrice:    total,
		Status:        domain.BookingStatusPendingPayment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tctx, cancel = withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err = s.bookingRepo.Create(tctx, booking); err != nil {
		return nil, storeErr("create booking", err)
	}

	s.logger.Info("booking created",
		logger.String("booking_id", booking.ID),
		logger.String("tutor_id", booking.TutorID),
		logger.String("student_id", booking.StudentID),
		logger.Int("sessions_count", booking.SessionsCount),
		logger.String("total_price", booking.TotalPrice.String()),
	)

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: booking id is required", domain.ErrInvalidArgument)
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	b, err := s.bookingRepo.GetByID(tctx, id)
	if err != nil {
		return nil, storeErr("get booking", err)
	}
	return b, nil
}

// ExpireStale moves every booking that stayed in PendingPayment longer than the pending TTL to Expired.
func (s *BookingService) ExpireStale(ctx context.Context) ([]*domain.Booking, error) {
	cutoff := time.Now().UTC().Add(-s.pendingTTL)

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	expired, err := s.bookingRepo.ExpirePending(tctx, cutoff)
	if err != nil {
		return nil, storeErr("expire pending bookings", err)
	}

	if len(expired) > 0 {
		s.logger.Info("stale bookings expired",
			logger.Int("count", len(expired)),
			logger.Duration("pending_ttl", s.pendingTTL),
		)
	}

	return expired, nil
}

func normalizeBookingInput(in *domain.CreateBookingInput) error {
	in.TutorID = strings.TrimSpace(in.TutorID)
	in.StudentID = strings.TrimSpace(in.StudentID)
	in.Subject = strings.TrimSpace(in.Subject)
	in.SessionType = strings.TrimSpace(in.SessionType)
	in.SessionFormat = strings.TrimSpace(in.SessionFormat)

	switch {
	case in.TutorID == "":
		return fmt.Errorf("%w: tutor_id is required", domain.ErrInvalidArgument)
	case in.StudentID == "":
		return fmt.Errorf("%w: student_id is required", domain.ErrInvalidArgument)
	case in.SessionsCount < 1:
		return fmt.Errorf("%w: sessions_count must be at least 1", domain.ErrInvalidArgument)
	case strings.TrimSpace(in.Date) == "":
		return fmt.Errorf("%w: date is required", domain.ErrInvalidArgument)
	case strings.TrimSpace(in.Time) == "":
		return fmt.Errorf("%w: time is required", domain.ErrInvalidArgument)
	case in.Subject == "":
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidArgument)
	}

	if in.SessionType == "" {
		in.SessionType = domain.DefaultSessionType
	}
	if in.SessionFormat == "" {
		in.SessionFormat = domain.DefaultSessionFormat
	}
	return nil
}
