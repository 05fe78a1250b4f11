// internal/server/server.go
//
// HTTP server helper with robust timeouts and graceful shutdown.
//
// Production hardening recommends:
//
//   • ReadHeaderTimeout – abort slow-loris headers (5 s)
//   • ReadTimeout       – cap request body reads (config, default 10 s)
//   • WriteTimeout      – cap total response time (config, default 15 s)
//   • IdleTimeout       – close keep-alives on idle clients (60 s)
//
// The SSE change stream outlives WriteTimeout, so its handler clears the
// per-connection deadline through http.ResponseController.
//
// This helper centralises those defaults so cmd/web doesn't repeat
// boilerplate.

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/smskills/institute/internal/config"
)

// ShutdownGrace bounds how long in-flight requests may finish after the
// stop signal.
const ShutdownGrace = 10 * time.Second

// New constructs an *http.Server from the http config section.
func New(cfg config.HTTP, handler http.Handler) *http.Server {
	read, write := cfg.ReadTimeout, cfg.WriteTimeout
	if read <= 0 {
		read = 10 * time.Second
	}
	if write <= 0 {
		write = 15 * time.Second
	}
	return &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       read,
		WriteTimeout:      write,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves on ln until ctx is cancelled, then shuts down gracefully.
// onShutdown runs before in-flight requests are drained, which lets
// long-lived streams close first.
func Run(ctx context.Context, srv *http.Server, ln net.Listener, log *zap.SugaredLogger, onShutdown func()) error {
	errc := make(chan error, 1)
	go func() {
		log.Infow("listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down", "grace", ShutdownGrace)
	if onShutdown != nil {
		onShutdown()
	}
	sctx, cancel := context.WithTimeout(context.Background(), ShutdownGrace)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
