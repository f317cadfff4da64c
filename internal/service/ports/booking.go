package ports

import (
	"context"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

type BookingRepo interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error)
	// ConditionalUpdate applies upd only while the stored status equals expected.
	// It returns domain.ErrConditionFailed when the status differs and domain.ErrBookingNotFound
	// when the booking does not exist.
	ConditionalUpdate(ctx context.Context, id string, expected domain.BookingStatus, upd domain.BookingUpdate) error
	ExpirePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error)
}
