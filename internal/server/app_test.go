package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.DatabaseDSN = "file:" + t.Name() + "?mode=memory&cache=shared"
	return cfg
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_BadDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestNewApp_BadLogBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogBackend = "syslog"

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}
