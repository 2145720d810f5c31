package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"fxdisplay/internal/config"

	"github.com/sirupsen/logrus"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves handler until ctx is canceled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func Start(ctx context.Context, cfg config.HTTPServer, handler http.Handler) error {
	listener, listenErr := net.Listen("tcp", ":"+cfg.Port)
	if listenErr != nil {
		return listenErr
	}
	return serve(ctx, cfg, listener, handler)
}

func serve(ctx context.Context, cfg config.HTTPServer, listener net.Listener, handler http.Handler) error {
	logrus.Infof("✅ HTTP server listening on %s", listener.Addr())

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		timeout := cfg.ShutdownTimeout
		if timeout <= 0 {
			timeout = defaultShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		logrus.Info("Shutting down http server")
		return server.Shutdown(shutdownCtx)
	case serveErr := <-errCh:
		return serveErr
	}
}
