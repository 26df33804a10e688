package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inkwell/internal/config"
)

// HTTPServer exposes /metrics and a liveness probe on /health.
type HTTPServer struct {
	Logger *slog.Logger
	Config *config.Config

	srv *http.Server
}

func (s *HTTPServer) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "metrics.HTTPServer")

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	s.srv = &http.Server{
		Addr:              s.Config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: time.Second,
	}

	return nil
}

func (s *HTTPServer) Run(ctx context.Context) error {
	s.Logger.Info("Starting metrics server", "addr", s.srv.Addr)

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()

		s.srv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
