package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/contentkit/internal/config"
)

func event(name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: fsnotify.Write}
}

func TestWatcher_DebouncedRun(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "post"), 0o755))

	runs := make(chan string, 16)
	w, err := New(root, config.WatchConfig{Debounce: config.Duration(50 * time.Millisecond)}, nil,
		func(_ context.Context, trigger string) { runs <- trigger })
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx)
	}()

	// Start performs one pass before entering the loop.
	require.Equal(t, "watch", <-runs)

	// A burst of writes collapses into a single run.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(
			filepath.Join(root, "post", "draft.md"),
			[]byte("---\ntitle: Draft\n---\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case trigger := <-runs:
		require.Equal(t, "watch", trigger)
	case <-time.After(5 * time.Second):
		t.Fatal("no run after file change")
	}

	select {
	case trigger := <-runs:
		t.Fatalf("unexpected extra run %q", trigger)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresEditorJunk(t *testing.T) {
	w := &Watcher{}
	require.False(t, w.relevant(event("/c/post/.draft.md.swp")))
	require.False(t, w.relevant(event("/c/post/draft.md~")))
	require.True(t, w.relevant(event("/c/post/draft.md")))
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), config.WatchConfig{}, nil, nil)
	require.Error(t, err)
}
