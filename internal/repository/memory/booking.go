// Package memory holds mutex-guarded in-process stores. They honour the same
// contracts as the durable backends and are used by tests and local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewBookingRepo() *BookingRepository {
	return &BookingRepository{bookings: make(map[string]domain.Booking)}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[b.ID]; ok {
		return domain.ErrConditionFailed
	}
	r.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	out := cloneBooking(&b)
	return &out, nil
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []*domain.Booking
	for _, b := range r.bookings {
		if b.StudentID != studentID {
			continue
		}
		c := cloneBooking(&b)
		res = append(res, &c)
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *BookingRepository) ConditionalUpdate(
	ctx context.Context,
	id string,
	expected domain.BookingStatus,
	upd domain.BookingUpdate,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return domain.ErrBookingNotFound
	}
	if b.Status != expected {
		return domain.ErrConditionFailed
	}
	upd.Apply(&b)
	r.bookings[id] = b
	return nil
}

func (r *BookingRepository) ExpirePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	var res []*domain.Booking
	for id, b := range r.bookings {
		if b.Status != domain.BookingStatusPendingPayment || !b.CreatedAt.Before(createdBefore) {
			continue
		}
		b.Status = domain.BookingStatusExpired
		b.UpdatedAt = now
		r.bookings[id] = b

		c := cloneBooking(&b)
		res = append(res, &c)
	}
	return res, nil
}

func cloneBooking(b *domain.Booking) domain.Booking {
	c := *b
	if b.PaymentID != nil {
		id := *b.PaymentID
		c.PaymentID = &id
	}
	return c
}
