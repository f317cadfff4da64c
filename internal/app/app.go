package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Saikirangolkonda/TutorMatch/internal/config"
	"github.com/Saikirangolkonda/TutorMatch/internal/handler"
	"github.com/Saikirangolkonda/TutorMatch/internal/middleware"
	"github.com/Saikirangolkonda/TutorMatch/internal/notification"
	"github.com/Saikirangolkonda/TutorMatch/internal/router"
	"github.com/Saikirangolkonda/TutorMatch/internal/scheduler"
	"github.com/Saikirangolkonda/TutorMatch/internal/service"
	"github.com/wb-go/wbf/logger"
)

type App struct {
	cfg        *config.Config
	log        logger.Logger
	stores     *stores
	dispatcher *notification.Dispatcher
	httpServer *http.Server
	scheduler  *scheduler.Scheduler

	// closed in reverse order on shutdown
	closers []namedCloser
}

type namedCloser struct {
	name string
	c    io.Closer
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"TutorMatch",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if err = app.initStores(context.Background()); err != nil {
		app.closeAll()
		return nil, fmt.Errorf("init stores: %w", err)
	}

	if err = app.initServices(context.Background()); err != nil {
		app.closeAll()
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initServices(ctx context.Context) error {
	sender, err := a.newSender(ctx)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}
	a.dispatcher = notification.NewDispatcher(sender, a.cfg.Notifier.Strategy(), a.log)

	timeout := a.cfg.Storage.Timeout

	tutorService := service.NewTutorService(a.stores.catalog, timeout)
	bookingService := service.NewBookingService(
		a.stores.bookings,
		a.stores.pricing,
		a.cfg.Booking.PendingTTL,
		timeout,
		a.log,
	)
	paymentService := service.NewPaymentService(
		a.stores.bookings,
		a.stores.payments,
		a.dispatcher,
		timeout,
		a.log,
	)
	studentService := service.NewStudentService(a.stores.bookings, a.stores.payments, timeout)

	a.scheduler = scheduler.New(
		service.NewExpirySweep(bookingService, paymentService, a.log),
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(tutorService, bookingService, paymentService, studentService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
			logger.String("storage", a.cfg.Storage.Driver),
			logger.String("notifier", a.cfg.Notifier.Driver),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		stop()
		a.closeAll()
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if err := a.dispatcher.Close(shutdownCtx); err != nil {
		a.log.Warn("pending notifications dropped", logger.String("error", err.Error()))
	}

	a.closeAll()
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) addCloser(name string, c io.Closer) {
	a.closers = append(a.closers, namedCloser{name: name, c: c})
}

func (a *App) closeAll() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		nc := a.closers[i]
		if err := nc.c.Close(); err != nil {
			a.log.Error("close failed",
				logger.String("resource", nc.name),
				logger.String("error", err.Error()),
			)
			continue
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "closed",
			logger.String("resource", nc.name),
		)
	}
	a.closers = nil
}
