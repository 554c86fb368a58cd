package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/timed-door/internal/config"
	"github.com/oshokin/timed-door/internal/service/common"
	"github.com/oshokin/timed-door/internal/service/server"
)

// reservePort returns a free local address for a test server.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return addr
}

// writeConfig saves settings pointing at addr and returns the file path.
func writeConfig(t *testing.T, addr string) string {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		ServerAddress:      addr,
		Timeout:            3 * time.Second,
		DoorTimeoutSeconds: 1,
	}))

	return cfgPath
}

// startGRPC starts a door server persisting to statePath and waits until it answers.
// The returned function stops the server and waits for Run to return.
func startGRPC(t *testing.T, addr string, statePath string) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	cfgPath := writeConfig(t, addr)
	done := make(chan error, 1)

	go func() {
		done <- server.Run(ctx, &server.Options{
			ConfigPath: cfgPath,
			StateFile:  statePath,
		})
	}()

	c, err := common.Dial(ctx, addr, common.WithCallTimeout(200*time.Millisecond))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	require.Eventually(t, func() bool {
		_, err := c.GetDoorState(ctx)
		return err == nil
	}, 5*time.Second, 20*time.Millisecond, "door server did not start")

	return func() {
		cancel()
		require.NoError(t, <-done)
	}
}
