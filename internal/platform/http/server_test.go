package http

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"fxdisplay/internal/config"

	"github.com/stretchr/testify/require"
)

func TestServe_RespondsAndStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, config.HTTPServer{ShutdownTimeout: time.Second}, listener, handler)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestStart_InvalidPort(t *testing.T) {
	err := Start(context.Background(), config.HTTPServer{Port: "not-a-port"}, http.NotFoundHandler())
	require.Error(t, err)
}
