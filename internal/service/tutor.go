package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/service/ports"
)

type TutorService struct {
	catalog      ports.TutorCatalog
	storeTimeout time.Duration
}

func NewTutorService(catalog ports.TutorCatalog, storeTimeout time.Duration) *TutorService {
	return &TutorService{catalog: catalog, storeTimeout: storeTimeout}
}

func (s *TutorService) GetTutor(ctx context.Context, id string) (*domain.Tutor, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: tutor id is required", domain.ErrInvalidArgument)
	}

	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	t, err := s.catalog.GetTutor(tctx, id)
	if err != nil {
		return nil, storeErr("get tutor", err)
	}
	return t, nil
}

func (s *TutorService) ListTutors(ctx context.Context) ([]*domain.Tutor, error) {
	tctx, cancel := withStoreTimeout(ctx, s.storeTimeout)
	defer cancel()

	tutors, err := s.catalog.ListTutors(tctx)
	if err != nil {
		return nil, storeErr("list tutors", err)
	}
	return tutors, nil
}
