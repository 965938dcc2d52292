package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	cfg := DefaultWatcherConfig(dir)
	cfg.Debounce = 50 * time.Millisecond

	w, err := NewWatcher(cfg)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func TestWatcherBatchesChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	w := newTestWatcher(t, dir)
	assert.True(t, w.IsRunning())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.js.map"), []byte("c"), 0o644))

	seen := map[string]bool{}
	deadline := time.After(5 * time.Second)
	for !seen[filepath.Join(dir, "index.html")] || !seen[filepath.Join(dir, "assets", "app.js")] {
		select {
		case batch := <-w.Batches():
			for _, p := range batch.Paths() {
				seen[p] = true
			}
		case <-deadline:
			t.Fatalf("timed out, saw %v", seen)
		}
	}
	assert.False(t, seen[filepath.Join(dir, "main.js.map")])
}

func TestWatcherStopIsIdempotent(t *testing.T) {
	w, err := NewWatcher(DefaultWatcherConfig(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
	assert.NoError(t, w.Stop())
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := NewWatcher(DefaultWatcherConfig(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
}

func TestPatterns(t *testing.T) {
	w := &Watcher{config: &WatcherConfig{
		Dir:            "/dist",
		Patterns:       []string{"*.js", "*.html"},
		IgnorePatterns: []string{".git", "*.map"},
	}}

	assert.True(t, w.matchesPattern("/dist/app.js"))
	assert.False(t, w.matchesPattern("/dist/app.css"))
	assert.True(t, w.shouldIgnore("/dist/.git/HEAD"))
	assert.True(t, w.shouldIgnore("/dist/app.js.map"))
	assert.False(t, w.shouldIgnore("/dist/assets/app.js"))
}

func waitForPath(t *testing.T, w *Watcher, path string) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-w.Batches():
			for _, p := range batch.Paths() {
				if p == path {
					return
				}
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", path)
		}
	}
}

func TestWatcherSurvivesRootRecreation(t *testing.T) {
	parent := t.TempDir()
	dist := filepath.Join(parent, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	w := newTestWatcher(t, dist)

	require.NoError(t, os.RemoveAll(dist))
	waitForPath(t, w, dist)

	require.NoError(t, os.MkdirAll(dist, 0o755))
	waitForPath(t, w, dist)

	appJS := filepath.Join(dist, "app.js")
	require.NoError(t, os.WriteFile(appJS, []byte("rebuilt"), 0o644))
	waitForPath(t, w, appJS)
}

func TestWatcherFiltersRootSiblings(t *testing.T) {
	parent := t.TempDir()
	dist := filepath.Join(parent, "dist")
	require.NoError(t, os.MkdirAll(dist, 0o755))
	w := newTestWatcher(t, dist)

	require.NoError(t, os.WriteFile(filepath.Join(parent, "sibling.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dist, "index.html"), []byte("a"), 0o644))

	select {
	case batch := <-w.Batches():
		assert.Equal(t, []string{filepath.Join(dist, "index.html")}, batch.Paths())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch")
	}
}

func TestServeSerializesBatches(t *testing.T) {
	w := &Watcher{batches: make(chan Batch, 3), errors: make(chan error, 1)}
	w.batches <- Batch{{Path: "a"}}
	w.batches <- Batch{{Path: "b"}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []string
	done := make(chan struct{})
	go func() {
		Serve(ctx, w, func(_ context.Context, b Batch) error {
			got = append(got, b.Paths()...)
			if len(got) == 2 {
				cancel()
			}
			return nil
		}, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFileEventTypeString(t *testing.T) {
	assert.Equal(t, "created", FileEventCreated.String())
	assert.Equal(t, "renamed", FileEventRenamed.String())
	assert.Equal(t, "unknown", FileEventType(0).String())
}
