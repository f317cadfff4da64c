package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const bookingColumns = `id, tutor_id, tutor_name, student_id, date, time, subject,
	session_type, session_format, learning_goals, sessions_count, total_price,
	status, payment_id, created_at, updated_at`

type BookingRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewBookingRepo(db *dbpg.DB) *BookingRepository {
	return &BookingRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (` + bookingColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.Master.ExecContext(
		ctx, query,
		b.ID, b.TutorID, b.TutorName, b.StudentID, b.Date, b.Time, b.Subject,
		b.SessionType, b.SessionFormat, b.LearningGoals, b.SessionsCount, b.TotalPrice,
		b.Status, b.PaymentID, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("booking %s exists: %w", b.ID, domain.ErrConditionFailed)
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("scan booking: %w", err)
	}

	return b, nil
}

func (r *BookingRepository) ListByStudent(ctx context.Context, studentID string) ([]*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
			  FROM bookings
			  WHERE student_id = $1
			  ORDER BY created_at DESC, id`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

// ConditionalUpdate is a single guarded UPDATE. It is never retried: a retry after a lost
// reply would see its own write and report a condition failure.
func (r *BookingRepository) ConditionalUpdate(
	ctx context.Context,
	id string,
	expected domain.BookingStatus,
	upd domain.BookingUpdate,
) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE bookings
			  SET status = $3,
			      payment_id = COALESCE($4, payment_id),
			      updated_at = $5
			  WHERE id = $1 AND status = $2`
	res, err := tx.ExecContext(ctx, query, id, expected, upd.Status, upd.PaymentID, upd.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("booking rows affected: %w", err)
	}
	if rows == 0 {
		// not found or no longer in the expected status
		var status string
		checkQuery := `SELECT status FROM bookings WHERE id = $1`
		if err = tx.QueryRowContext(ctx, checkQuery, id).Scan(&status); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrBookingNotFound
			}
			return fmt.Errorf("check booking status: %w", err)
		}
		return fmt.Errorf("booking %s is %s: %w", id, status, domain.ErrConditionFailed)
	}

	return tx.Commit()
}

func (r *BookingRepository) ExpirePending(ctx context.Context, createdBefore time.Time) ([]*domain.Booking, error) {
	query := `UPDATE bookings
			  SET status = $2, updated_at = NOW()
			  WHERE status = $1 AND created_at < $3
			  RETURNING ` + bookingColumns

	// not retried: a repeat after a lost reply would return an empty set
	rows, err := r.db.Master.QueryContext(
		ctx, query,
		domain.BookingStatusPendingPayment, domain.BookingStatusExpired, createdBefore,
	)
	if err != nil {
		return nil, fmt.Errorf("expire pending: %w", err)
	}
	defer rows.Close()

	var res []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, b)
	}

	return res, rows.Err()
}

func scanBooking(s rowScanner) (*domain.Booking, error) {
	var (
		b         domain.Booking
		paymentID sql.NullString
	)
	err := s.Scan(
		&b.ID, &b.TutorID, &b.TutorName, &b.StudentID, &b.Date, &b.Time, &b.Subject,
		&b.SessionType, &b.SessionFormat, &b.LearningGoals, &b.SessionsCount, &b.TotalPrice,
		&b.Status, &paymentID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if paymentID.Valid {
		b.PaymentID = &paymentID.String
	}
	return &b, nil
}
