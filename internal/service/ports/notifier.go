package ports

import (
	"context"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
)

// Notifier delivers a message on a best-effort basis. It never reports failure to the caller.
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
