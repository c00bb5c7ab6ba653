package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
//
// This handler exposes all registered metrics in the standard Prometheus
// exposition format. It should be mounted at the path specified in the
// MetricsConfig (typically "/metrics").
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			// Enable OpenMetrics encoding (preferred over Prometheus text format)
			EnableOpenMetrics: true,

			// Error handling
			ErrorHandling: promhttp.ContinueOnError,
		},
	)
}

// Server serves the metrics endpoint for long-running commands.
type Server struct {
	srv    *http.Server
	mux    *http.ServeMux
	ln     net.Listener
	logger *slog.Logger
}

// NewServer binds the listen address from the configuration. Binding happens
// immediately so that address errors surface before the command starts work.
func (c *Collector) NewServer() (*Server, error) {
	ln, err := net.Listen("tcp", c.config.ListenAddress)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.Path, c.Handler())

	return &Server{
		srv: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		mux:    mux,
		ln:     ln,
		logger: slog.Default().With("component", "metrics"),
	}, nil
}

// Mux returns the server's mux so that other endpoints, such as health
// probes, can be registered before Serve.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve blocks until ctx is cancelled, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving metrics", "address", s.Addr())
		errCh <- s.srv.Serve(s.ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
