package server_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/ochronus/hello-inertia/core/server"
)

func hello() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("Hey there!"))
	})
}

func waitListening(t *testing.T, srv *server.Server) string {
	t.Helper()
	var addr string
	require.Eventually(t, func() bool {
		addr = srv.Addr()
		_, port, err := net.SplitHostPort(addr)
		return err == nil && port != "0"
	}, 2*time.Second, 10*time.Millisecond)
	return addr
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url) //nolint:noctx
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestServer_RunServesUntilCanceled(t *testing.T) {
	t.Parallel()

	var shutdownCalled atomic.Bool
	srv := server.New("127.0.0.1:0",
		server.WithShutdownTimeout(time.Second),
		server.WithOnShutdown(func() { shutdownCalled.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(gctx, hello()))

	addr := waitListening(t, srv)
	assert.Equal(t, "Hey there!", get(t, "http://"+addr+"/hey"))

	cancel()
	require.NoError(t, g.Wait())
	assert.Eventually(t, shutdownCalled.Load, time.Second, 10*time.Millisecond)

	_, err := net.DialTimeout("tcp", addr, 200*time.Millisecond)
	assert.Error(t, err)
}

func TestServer_BindError(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := server.New(ln.Addr().String())
	err = srv.Start(context.Background(), hello())
	require.ErrorIs(t, err, server.ErrListen)
}

func TestServer_StartTwice(t *testing.T) {
	t.Parallel()

	srv := server.New("127.0.0.1:0")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start(ctx, hello()) }()
	waitListening(t, srv)

	require.ErrorIs(t, srv.Start(ctx, hello()), server.ErrServerAlreadyRunning)

	cancel()
	require.ErrorIs(t, <-errCh, context.Canceled)
	require.NoError(t, srv.Stop())
}

func TestServer_StopWhenNotRunning(t *testing.T) {
	t.Parallel()

	assert.NoError(t, server.New("127.0.0.1:0").Stop())
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates server from defaults", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.DefaultConfig("0.0.0.0:1337"))
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:1337", srv.Addr())
	})

	t.Run("fails without address", func(t *testing.T) {
		t.Parallel()
		srv, err := server.NewFromConfig(server.Config{ReadTimeout: time.Second})
		require.ErrorIs(t, err, server.ErrMissingAddress)
		assert.Nil(t, srv)
	})
}

func TestConfigFromEnv(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.ConfigFromEnv(":1337", map[string]string{})
		require.NoError(t, err)
		assert.Equal(t, server.DefaultConfig(":1337"), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := server.ConfigFromEnv(":1337", map[string]string{
			"SERVER_READ_TIMEOUT":     "3s",
			"SERVER_SHUTDOWN_TIMEOUT": "1m",
			"SERVER_MAX_HEADER_BYTES": "2048",
		})
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
		assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
		assert.Equal(t, 2048, cfg.MaxHeaderBytes)
		assert.Equal(t, server.DefaultWriteTimeout, cfg.WriteTimeout)
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Parallel()
		_, err := server.ConfigFromEnv(":1337", map[string]string{"SERVER_IDLE_TIMEOUT": "soon"})
		require.ErrorIs(t, err, server.ErrInvalidConfig)
	})
}
