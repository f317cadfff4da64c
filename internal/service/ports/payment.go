package ports

import (
	"context"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

type PaymentRepo interface {
	// Create returns domain.ErrAlreadyFinalized when the backend can tell that a completed
	// payment for the same booking already exists.
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByBookings(ctx context.Context, bookingIDs []string) ([]*domain.Payment, error)
	MarkFailed(ctx context.Context, id string) error
}
