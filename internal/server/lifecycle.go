package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ManagedServer wraps an http.Server with startup error reporting and
// graceful shutdown.
type ManagedServer struct {
	server   *http.Server
	logger   *zap.Logger
	errCh    chan error
	startErr error
}

// NewManagedServer builds a managed server listening on addr.
func NewManagedServer(addr string, handler http.Handler, logger *zap.Logger) *ManagedServer {
	errLog, _ := zap.NewStdLogAt(logger, zapcore.ErrorLevel)

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ErrorLog:          errLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &ManagedServer{
		server: srv,
		logger: logger,
		errCh:  make(chan error, 1),
	}
}

// Start begins serving in a background goroutine.
func (m *ManagedServer) Start() {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			m.errCh <- err
		}
		close(m.errCh)
	}()
}

// WaitForStartup blocks until the listener fails or the timeout elapses.
// A timeout means the server came up.
func (m *ManagedServer) WaitForStartup(timeout time.Duration) error {
	select {
	case err := <-m.errCh:
		if err != nil {
			m.startErr = err
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-time.After(timeout):
		return nil
	}
}

// Shutdown drains in-flight requests until ctx expires.
func (m *ManagedServer) Shutdown(ctx context.Context) {
	if m.startErr != nil {
		return
	}
	if err := m.server.Shutdown(ctx); err != nil {
		m.logger.Warn("shutdown error", zap.Error(err))
	}
}
