package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/trknhr/tonecheck/internal/logger"
)

type ServerOptions struct {
	Addr        string
	CORSOrigins []string
}

// NewServer wires the handler behind request-id, access log and CORS
// middleware.
func NewServer(svc Classifier, opts ServerOptions) *http.Server {
	mux := http.NewServeMux()
	New(svc).Register(mux)

	var h http.Handler = mux
	h = WithCORS(opts.CORSOrigins)(h)
	h = WithAccessLog(h)
	h = WithRequestID(h)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return err
	}
	return <-errCh
}
