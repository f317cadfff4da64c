package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

const DefaultStoreTimeout = 5 * time.Second

func withStoreTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = DefaultStoreTimeout
	}
	return context.WithTimeout(ctx, d)
}

// storeErr wraps err with op. Errors the domain already classifies pass through,
// everything else (timeouts, dropped connections) becomes domain.ErrTransientStore.
func storeErr(op string, err error) error {
	switch {
	case domain.IsNotFound(err),
		errors.Is(err, domain.ErrAlreadyFinalized),
		errors.Is(err, domain.ErrConditionFailed),
		errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidationFailed),
		errors.Is(err, domain.ErrTransientStore):
		return fmt.Errorf("%s: %w", op, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTransientStore, err)
	}
}
