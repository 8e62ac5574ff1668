package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewPromServer builds an HTTP server exposing Prometheus metrics at
// /metrics on the given address. A dedicated ServeMux keeps the
// endpoint off the default mux.
func NewPromServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{Addr: addr, Handler: mux}
}

// ServePromMetrics serves the metrics endpoint until ctx is canceled,
// then shuts the server down gracefully. It returns nil on a clean
// shutdown and the listen error otherwise.
func ServePromMetrics(ctx context.Context, addr string) error {
	srv := NewPromServer(addr)
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errc
		return nil
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}
