package proc

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" || !Available("sh") {
		t.Skip("sh not available")
	}
}

func TestRun(t *testing.T) {
	requireShell(t)
	ctx := context.Background()

	t.Run("captures stdout and stderr", func(t *testing.T) {
		res, err := Run(ctx, t.TempDir(), "sh", "-c", "echo out; echo err >&2")
		require.NoError(t, err)
		assert.Equal(t, 0, res.ExitCode)
		assert.Equal(t, "out\n", string(res.Stdout))
		assert.Equal(t, "err\n", string(res.Stderr))
	})

	t.Run("non-zero exit is reported not returned", func(t *testing.T) {
		res, err := Run(ctx, t.TempDir(), "sh", "-c", "exit 1")
		require.NoError(t, err)
		assert.Equal(t, 1, res.ExitCode)

		res, err = Run(ctx, t.TempDir(), "sh", "-c", "echo broken >&2; exit 2")
		require.NoError(t, err)
		assert.Equal(t, 2, res.ExitCode)
		assert.Equal(t, "broken\n", string(res.Stderr))
	})

	t.Run("runs in the given directory", func(t *testing.T) {
		dir := t.TempDir()
		res, err := Run(ctx, dir, "sh", "-c", "pwd -P")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Stdout)
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := Run(ctx, t.TempDir(), "seek-definitely-not-a-real-binary")
		require.Error(t, err)
	})
}

func TestRun_Timeout(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := Run(ctx, t.TempDir(), "sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
	assert.Equal(t, -1, res.ExitCode)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRun_Cancelled(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Run(ctx, t.TempDir(), "sh", "-c", "exec sleep 5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestAvailable(t *testing.T) {
	assert.False(t, Available("seek-definitely-not-a-real-binary"))
}
