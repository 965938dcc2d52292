// Package daemon watches the web bundle and re-packages it on change.
package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileEventType represents the type of file system event
type FileEventType int

const (
	FileEventCreated FileEventType = iota + 1
	FileEventModified
	FileEventDeleted
	FileEventRenamed
)

func (t FileEventType) String() string {
	switch t {
	case FileEventCreated:
		return "created"
	case FileEventModified:
		return "modified"
	case FileEventDeleted:
		return "deleted"
	case FileEventRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Type      FileEventType
	Timestamp time.Time
}

// Batch is every change seen during one quiet period, one event per path
// (the latest), sorted by path.
type Batch []FileEvent

// Paths returns the changed paths.
func (b Batch) Paths() []string {
	paths := make([]string, 0, len(b))
	for _, e := range b {
		paths = append(paths, e.Path)
	}
	return paths
}

// WatcherConfig contains configuration for the file watcher
type WatcherConfig struct {
	// Dir is the root directory to watch
	Dir string

	// Patterns are glob patterns matched against base names. Empty matches all.
	Patterns []string

	// IgnorePatterns are patterns to ignore (e.g., ".git", "*.map")
	IgnorePatterns []string

	// Debounce is how long the tree must stay quiet before a batch is emitted
	Debounce time.Duration
}

// DefaultWatcherConfig returns default watcher configuration for a bundle
// directory
func DefaultWatcherConfig(dir string) *WatcherConfig {
	return &WatcherConfig{
		Dir: dir,
		IgnorePatterns: []string{
			".git",
			".DS_Store",
			"*.map",
			"*.tmp",
			"*~",
		},
		Debounce: 500 * time.Millisecond,
	}
}

// Watcher watches a directory tree and emits debounced batches of changes
type Watcher struct {
	config  *WatcherConfig
	watcher *fsnotify.Watcher
	batches chan Batch
	errors  chan error
	done    chan struct{}
	mu      sync.RWMutex
	running bool

	pending   map[string]FileEvent
	timer     *time.Timer
	pendingMu sync.Mutex
}

// NewWatcher creates a new file watcher
func NewWatcher(config *WatcherConfig) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		config:  config,
		watcher: fsWatcher,
		batches: make(chan Batch, 16),
		errors:  make(chan error, 10),
		done:    make(chan struct{}),
		pending: make(map[string]FileEvent),
	}, nil
}

// Start begins watching for file changes
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addRecursive(w.config.Dir); err != nil {
		return err
	}

	// the parent reports the root being deleted and created again
	root := w.root()
	if parent := filepath.Dir(root); parent != root {
		if err := w.watcher.Add(parent); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)

	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()

	return w.watcher.Close()
}

// Batches returns the channel of debounced change batches
func (w *Watcher) Batches() <-chan Batch {
	return w.batches
}

// Errors returns the channel of errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// IsRunning returns whether the watcher is running
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

// addRecursive adds a directory and all subdirectories to the watcher
func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && w.ignored(info.Name()) {
				return filepath.SkipDir
			}
			return w.watcher.Add(path)
		}

		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	root := w.root()
	isRoot := filepath.Clean(event.Name) == root
	if !isRoot {
		// siblings of the root show up through the parent watch
		if filepath.Dir(event.Name) == filepath.Dir(root) {
			return
		}
		if !w.matchesPattern(event.Name) || w.shouldIgnore(event.Name) {
			return
		}
	}

	var eventType FileEventType
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		eventType = FileEventCreated
		// new directories, the root included, must be watched too
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
		}
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = FileEventModified
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = FileEventDeleted
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = FileEventRenamed
	default:
		return
	}

	w.debounce(FileEvent{
		Path:      event.Name,
		Type:      eventType,
		Timestamp: time.Now(),
	})
}

// debounce records the event and restarts the single quiet-period timer.
func (w *Watcher) debounce(event FileEvent) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[event.Path] = event
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.config.Debounce, w.flush)
}

func (w *Watcher) flush() {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	batch := make(Batch, 0, len(w.pending))
	for _, e := range w.pending {
		batch = append(batch, e)
	}
	w.pending = make(map[string]FileEvent)
	w.pendingMu.Unlock()

	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case w.batches <- batch:
	case <-w.done:
	}
}

func (w *Watcher) matchesPattern(path string) bool {
	if len(w.config.Patterns) == 0 {
		return true
	}

	base := filepath.Base(path)
	for _, pattern := range w.config.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

func (w *Watcher) ignored(name string) bool {
	for _, pattern := range w.config.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func (w *Watcher) root() string {
	return filepath.Clean(w.config.Dir)
}

// shouldIgnore checks every path component below the watched root
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.config.Dir, path)
	if err != nil {
		rel = path
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if w.ignored(part) {
			return true
		}
	}
	return false
}

// Serve calls fn for every batch until ctx is done. Calls never overlap;
// batches arriving while fn runs are handled afterwards. Errors from fn are
// passed to onError and do not stop the loop.
func Serve(ctx context.Context, w *Watcher, fn func(context.Context, Batch) error, onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-w.Batches():
			if err := fn(ctx, batch); err != nil && onError != nil {
				onError(err)
			}
		case err := <-w.Errors():
			if onError != nil {
				onError(err)
			}
		}
	}
}
