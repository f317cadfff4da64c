package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

// oneCompletedConstraint is the partial unique index from migrations/00001_init.sql.
const oneCompletedConstraint = "payments_one_completed_per_booking"

const paymentColumns = `id, booking_id, amount, method, contact, status, created_at`

type PaymentRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewPaymentRepo(db *dbpg.DB) *PaymentRepository {
	return &PaymentRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (` + paymentColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Master.ExecContext(
		ctx, query,
		p.ID, p.BookingID, p.Amount, p.Method, p.Contact, p.Status, p.CreatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.Constraint == oneCompletedConstraint {
			return fmt.Errorf("booking %s already paid: %w", p.BookingID, domain.ErrAlreadyFinalized)
		}
		return fmt.Errorf("insert payment: %w", err)
	}

	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}

	p, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("scan payment: %w", err)
	}

	return p, nil
}

func (r *PaymentRepository) ListByBookings(ctx context.Context, bookingIDs []string) ([]*domain.Payment, error) {
	if len(bookingIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + paymentColumns + `
			  FROM payments
			  WHERE booking_id = ANY($1)
			  ORDER BY created_at DESC, id`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, pq.Array(bookingIDs))
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var res []*domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		res = append(res, p)
	}

	return res, rows.Err()
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id string) error {
	query := `UPDATE payments SET status = $2 WHERE id = $1`

	res, err := r.db.ExecWithRetry(ctx, r.strategy, query, id, domain.PaymentStatusFailed)
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("payment rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

func scanPayment(s rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	if err := s.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Method, &p.Contact, &p.Status, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
