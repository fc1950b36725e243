package generator

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the File Watcher:
// - Writing a matching file triggers one regenerate call after the debounce
// - Changes to excluded paths are ignored
// - Stop is idempotent and shuts the event loop down

func newTestWatcher(t *testing.T, root string, calls *atomic.Int32) *Watcher {
	t.Helper()

	fd, err := NewFileDiscovery(root, []string{"**/*.ts"}, []string{"dist/**"})
	require.NoError(t, err)

	w, err := NewWatcher(root, fd, func(context.Context) {
		calls.Add(1)
	})
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w
}

func waitForCalls(t *testing.T, calls *atomic.Int32, want int32) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if calls.Load() >= want {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("expected %d regenerate call(s), got %d", want, calls.Load())
}

func TestWatcher_RegeneratesOnMatchingWrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var calls atomic.Int32
	w := newTestWatcher(t, root, &calls)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "api.ts"), []byte("export const x = 1;\n"), 0o644))
	waitForCalls(t, &calls, 1)
}

func TestWatcher_IgnoresExcludedPaths(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "dist"), 0o755))

	var calls atomic.Int32
	w := newTestWatcher(t, root, &calls)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(root, "dist", "bundle.ts"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x\n"), 0o644))

	time.Sleep(1 * time.Second)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var calls atomic.Int32
	w := newTestWatcher(t, root, &calls)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	w.Stop()
	w.Stop()
}
