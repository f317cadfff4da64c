package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/scheduler/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

func TestScheduler_Start_SweepsImmediately(t *testing.T) {
	expirer := mocks.NewMockBookingExpirer(t)
	log := newTestLogger(t)

	s := New(expirer, time.Hour, log)

	expired := []*domain.Booking{
		{ID: "b1", TutorID: "t1", StudentID: "s1", Status: domain.BookingStatusExpired},
	}
	expirer.EXPECT().ExpireStale(mock.Anything).Return(expired, nil).Once()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.Len(t, expirer.Calls, 1)
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	expirer := mocks.NewMockBookingExpirer(t)
	log := newTestLogger(t)

	s := New(expirer, 50*time.Millisecond, log)

	expirer.EXPECT().ExpireStale(mock.Anything).Return(nil, errors.New("db error"))

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(expirer.Calls), 2)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	expirer := mocks.NewMockBookingExpirer(t)
	log := newTestLogger(t)

	s := New(expirer, time.Second, log)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
	assert.Empty(t, expirer.Calls)
}

func TestScheduler_MultipleTicks(t *testing.T) {
	expirer := mocks.NewMockBookingExpirer(t)
	log := newTestLogger(t)

	s := New(expirer, 30*time.Millisecond, log)

	expirer.EXPECT().ExpireStale(mock.Anything).Return(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(expirer.Calls), 3)
}
