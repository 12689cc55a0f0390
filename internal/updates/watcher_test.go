package updates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitEvent(t *testing.T, ch <-chan Event, kind Kind) Event {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-ch:
			if ev.Kind == kind {
				return ev
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", kind)
		}
	}
}

func TestWatcher_PublishesReadyAndUpdates(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("v1"), 0o600))

	n := NewNotifier(nil)
	defer n.Close()
	ch, cancel := n.Subscribe(8)
	defer cancel()

	w, err := NewWatcher(dir, n, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	ready := waitEvent(t, ch, OfflineReady)
	require.Equal(t, w.Version(), ready.Version)
	require.NotEmpty(t, ready.Version)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("version two"), 0o600))
	update := waitEvent(t, ch, UpdateAvailable)
	require.NotEqual(t, ready.Version, update.Version)
	require.Equal(t, w.Version(), update.Version)
}

func TestWatcher_StartMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), NewNotifier(nil), 0, nil)
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))
	w.Stop()
}

func TestNewWatcher_RequiresNotifier(t *testing.T) {
	_, err := NewWatcher(t.TempDir(), nil, 0, nil)
	require.Error(t, err)
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	w, err := NewWatcher(t.TempDir(), NewNotifier(nil), 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	cancelCtx()
	w.Stop()
}
