package notification

import (
	"context"
	"sync"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

// Sender delivers one message to one contact over a concrete channel.
type Sender interface {
	Send(ctx context.Context, contact, subject, body string) error
}

// Dispatcher sends notifications in the background with bounded retries. Delivery failures
// are logged and dropped.
type Dispatcher struct {
	sender   Sender
	strategy retry.Strategy
	logger   logger.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, strategy retry.Strategy, logger logger.Logger) *Dispatcher {
	if strategy.Attempts < 1 {
		strategy.Attempts = 1
	}
	return &Dispatcher{
		sender:   sender,
		strategy: strategy,
		logger:   logger,
	}
}

func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.logger.Warn("notification dropped (dispatcher closed)",
			logger.String("subject", n.Subject),
		)
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		d.deliver(ctx, n)
	}()
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	if n.Contact == "" {
		d.logger.Debug("notification skipped (no contact)", logger.String("subject", n.Subject))
		return
	}

	err := retry.Do(func() error {
		return d.sender.Send(ctx, n.Contact, n.Subject, n.Body)
	}, d.strategy)
	if err != nil {
		d.logger.Error("failed to deliver notification",
			logger.String("subject", n.Subject),
			logger.Int("attempts", d.strategy.Attempts),
			logger.String("error", err.Error()),
		)
		return
	}

	d.logger.Debug("notification delivered", logger.String("subject", n.Subject))
}

// Close stops accepting notifications and waits for in-flight deliveries or ctx, whichever
// comes first.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
