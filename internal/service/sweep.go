package service

import (
	"context"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/wb-go/wbf/logger"
)

// ExpirySweep expires stale bookings and releases completed payments left on them.
type ExpirySweep struct {
	bookings *BookingService
	payments *PaymentService
	logger   logger.Logger
}

func NewExpirySweep(bookings *BookingService, payments *PaymentService, logger logger.Logger) *ExpirySweep {
	return &ExpirySweep{bookings: bookings, payments: payments, logger: logger}
}

func (s *ExpirySweep) ExpireStale(ctx context.Context) ([]*domain.Booking, error) {
	expired, err := s.bookings.ExpireStale(ctx)
	if err != nil {
		return nil, err
	}

	// the next sweep no longer sees these bookings, so a failure here is only logged
	if err = s.payments.ReleaseOrphans(ctx, expired); err != nil {
		s.logger.Error("failed to release payments of expired bookings",
			logger.Int("count", len(expired)),
			logger.String("error", err.Error()),
		)
	}
	return expired, nil
}
