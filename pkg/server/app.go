package server

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	xhttp "AvoDash/pkg/http"
	applogger "AvoDash/pkg/logger"
)

// App encapsulates the application lifecycle.
type App struct {
	logger          *applogger.Logger
	httpServer      *xhttp.Server
	shutdownTimeout time.Duration
	closers         []func()
}

// New creates a new App. Closers run after the HTTP server has stopped, in
// reverse order.
func New(l *applogger.Logger, httpServer *xhttp.Server, closers ...func()) *App {
	if l == nil {
		l = applogger.Nop()
	}
	return &App{
		logger:          l,
		httpServer:      httpServer,
		shutdownTimeout: httpServer.ShutdownTimeout(),
		closers:         closers,
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the server fails.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := a.httpServer.Start()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err, ok := <-errCh:
		if ok && err != nil {
			a.logger.Error("http server error", applogger.Error(err))
			runErr = err
		}
	}

	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()

	var err error
	if stopErr := a.httpServer.Stop(shutdownCtx); stopErr != nil {
		a.logger.Error("http shutdown error", applogger.Error(stopErr))
		err = fmt.Errorf("http shutdown: %w", stopErr)
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}

	a.logger.Info("shutdown complete")
	return err
}
