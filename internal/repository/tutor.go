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

const tutorColumns = `id, name, subjects, hourly_rate, rating, availability, bio`

// TutorRepository reads the tutors table. Rows are maintained outside this service.
type TutorRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewTutorRepo(db *dbpg.DB) *TutorRepository {
	return &TutorRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

func (r *TutorRepository) GetTutor(ctx context.Context, id string) (*domain.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors WHERE id = $1`

	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor: %w", err)
	}

	t, err := scanTutor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTutorNotFound
		}
		return nil, fmt.Errorf("scan tutor: %w", err)
	}

	return t, nil
}

func (r *TutorRepository) ListTutors(ctx context.Context) ([]*domain.Tutor, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutors ORDER BY name`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query)
	if err != nil {
		return nil, fmt.Errorf("list tutors: %w", err)
	}
	defer rows.Close()

	var res []*domain.Tutor
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor: %w", err)
		}
		res = append(res, t)
	}

	return res, rows.Err()
}

func scanTutor(s rowScanner) (*domain.Tutor, error) {
	var t domain.Tutor
	if err := s.Scan(
		&t.ID, &t.Name, pq.Array(&t.Subjects), &t.HourlyRate,
		&t.Rating, &t.Availability, &t.Bio,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
