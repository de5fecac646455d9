package profiler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) *Server {
	t.Helper()

	server := New(0, zerolog.Nop())
	require.NoError(t, server.Start(context.Background()), "Start() error")
	t.Cleanup(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	})

	return server
}

func TestServer_StartAndShutdown(t *testing.T) {
	server := New(0, zerolog.Nop())
	assert.Empty(t, server.Addr(), "no address before Start")

	require.NoError(t, server.Start(context.Background()), "Start() error")
	assert.True(t, strings.HasPrefix(server.Addr(), "127.0.0.1:"))
	assert.Equal(t, "http://"+server.Addr()+"/debug/pprof/", server.URL())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(shutdownCtx), "Shutdown() error")
}

func TestServer_PortInUse(t *testing.T) {
	first := startServer(t)

	_, port, ok := strings.Cut(first.Addr(), ":")
	require.True(t, ok)

	second := &Server{addr: "127.0.0.1:" + port, httpServer: &http.Server{}, log: zerolog.Nop()}
	assert.Error(t, second.Start(context.Background()))
}

func TestServer_PprofEndpoints(t *testing.T) {
	server := startServer(t)
	baseURL := "http://" + server.Addr()

	tests := []struct {
		name     string
		endpoint string
	}{
		{
			name:     "index",
			endpoint: "/debug/pprof/",
		},
		{
			name:     "cmdline",
			endpoint: "/debug/pprof/cmdline",
		},
		{
			name:     "symbol",
			endpoint: "/debug/pprof/symbol",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(baseURL + tt.endpoint)
			require.NoError(t, err, "GET %s error", tt.endpoint)
			defer func() {
				_ = resp.Body.Close()
			}()

			assert.Equal(t, http.StatusOK, resp.StatusCode, "GET %s status = %v, want %v", tt.endpoint, resp.StatusCode, http.StatusOK)
		})
	}
}
