package memory

import (
	"context"
	"sync"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

// PaymentRepository keeps at most one completed payment per booking, like the
// partial unique index of the Postgres schema.
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]domain.Payment
}

func NewPaymentRepo() *PaymentRepository {
	return &PaymentRepository{payments: make(map[string]domain.Payment)}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.Status == domain.PaymentStatusCompleted {
		for _, existing := range r.payments {
			if existing.BookingID == p.BookingID && existing.Status == domain.PaymentStatusCompleted {
				return domain.ErrAlreadyFinalized
			}
		}
	}
	r.payments[p.ID] = *p
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.payments[id]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) ListByBookings(ctx context.Context, bookingIDs []string) ([]*domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	want := make(map[string]struct{}, len(bookingIDs))
	for _, id := range bookingIDs {
		want[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.Payment
	for _, p := range r.payments {
		if _, ok := want[p.BookingID]; !ok {
			continue
		}
		c := p
		res = append(res, &c)
	}
	return res, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[id]
	if !ok {
		return domain.ErrPaymentNotFound
	}
	p.Status = domain.PaymentStatusFailed
	r.payments[id] = p
	return nil
}
