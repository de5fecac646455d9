// Package profiler serves pprof endpoints for debugging a running dashboard.
package profiler

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/rs/zerolog"
)

type Server struct {
	httpServer *http.Server
	listener   net.Listener
	addr       string
	log        zerolog.Logger
}

// New creates a server bound to localhost on port. Port 0 picks a free port.
func New(port int, logger zerolog.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		httpServer: &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		addr: fmt.Sprintf("127.0.0.1:%d", port),
		log:  logger.With().Str("component", "profiler").Logger(),
	}
}

// Start listens and serves in the background. It returns once the listener
// is bound, or with the serve error if serving fails immediately.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	s.listener = listener

	s.log.Info().Str("addr", listener.Addr().String()).Msg("starting profiler server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("profiler server failed to start: %w", err)
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// URL returns the pprof index URL.
func (s *Server) URL() string {
	return "http://" + s.Addr() + "/debug/pprof/"
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down profiler server")
	return s.httpServer.Shutdown(ctx)
}
