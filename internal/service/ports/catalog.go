package ports

import (
	"context"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

// TutorCatalog is the read-only tutor source. GetTutor returns domain.ErrTutorNotFound for unknown ids.
type TutorCatalog interface {
	GetTutor(ctx context.Context, id string) (*domain.Tutor, error)
	ListTutors(ctx context.Context) ([]*domain.Tutor, error)
}
