package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/dero-bridge/pkg/config"
)

const defaultShutdownTimeout = 30 * time.Second

// NewServer builds an *http.Server for handler from the server config.
func NewServer(handler http.Handler, cfg *config.ServerConfig) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// ServeAndWait serves handler until ctx is canceled or the listener fails,
// then shuts down gracefully within cfg.ShutdownTimeout.
func ServeAndWait(ctx context.Context, handler http.Handler, logger *zap.Logger, cfg *config.ServerConfig) error {
	if handler == nil {
		return fmt.Errorf("nil handler")
	}
	if cfg == nil {
		return fmt.Errorf("nil server config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return Serve(ctx, NewServer(handler, cfg), logger, cfg.ShutdownTimeout)
}

// Serve runs srv in the background and blocks until ctx is done or the
// server exits. An unexpected listener error is returned after shutdown.
func Serve(ctx context.Context, srv *http.Server, logger *zap.Logger, shutdownTimeout time.Duration) error {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("address", srv.Addr))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-errCh:
		if runErr != nil {
			logger.Error("HTTP server error", zap.Error(runErr))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down HTTP server", zap.Duration("timeout", shutdownTimeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
		return fmt.Errorf("http shutdown: %w", err)
	}

	if runErr != nil {
		return fmt.Errorf("http server failed: %w", runErr)
	}

	logger.Info("HTTP server stopped")
	return nil
}
