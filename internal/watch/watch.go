package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-dev/querido/internal/errors"
)

// Kind classifies a detected filesystem event.
type Kind int

const (
	CreateOrModify Kind = iota
	Rename
	Remove
)

func (k Kind) String() string {
	switch k {
	case CreateOrModify:
		return "CreateOrModify"
	case Rename:
		return "Rename"
	case Remove:
		return "Remove"
	default:
		return "Unknown"
	}
}

// Event is one detected change to a watched file.
type Event struct {
	Path string
	Kind Kind
}

// DefaultIgnore contains glob patterns skipped when no config override is
// supplied.
var DefaultIgnore = []string{
	"*_test.go",
	".git",
	"node_modules",
	"dist",
	"__generated__",
	"*.tmp",
	"*.swp",
	"*~",
}

// Config configures a Watcher.
type Config struct {
	// Paths are the directories watched, recursively.
	Paths []string

	// Ignore contains glob patterns to skip.
	Ignore []string

	// Debounce is the quiet period after the last event in a burst before
	// the accumulated batch is delivered.
	Debounce time.Duration
}

// Watcher batches fsnotify events across a debounce window and delivers
// them to a single callback, so a multi-file save triggers one recompile
// instead of one per file.
type Watcher struct {
	config Config
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	onEvent func([]Event)
	pending map[string]Kind

	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a Watcher and registers fsnotify handles for every directory
// under config.Paths. It returns a Q400 error if any configured path does
// not exist.
func New(config Config) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		config:  config,
		fsw:     fsw,
		pending: make(map[string]Kind),
	}

	for _, root := range config.Paths {
		if err := w.addRecursive(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) addRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.New("Q400").WithDetail("watch path does not exist: " + root)
		}
		return err
	}
	if !info.IsDir() {
		return w.fsw.Add(filepath.Dir(root))
	}

	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

// OnEvent sets the callback invoked with each debounced batch.
func (w *Watcher) OnEvent(fn func([]Event)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onEvent = fn
}

// Start runs the watch loop until ctx is cancelled or Close is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()
	defer close(w.doneCh)

	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.mu.Unlock()
			return
		}
		batch := make([]Event, 0, len(w.pending))
		for path, kind := range w.pending {
			batch = append(batch, Event{Path: path, Kind: kind})
		}
		w.pending = make(map[string]Kind)
		callback := w.onEvent
		w.mu.Unlock()

		if callback != nil {
			callback(batch)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopCh:
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(ev.Name) {
				continue
			}

			kind := CreateOrModify
			switch {
			case ev.Op&fsnotify.Remove != 0:
				kind = Remove
			case ev.Op&fsnotify.Rename != 0:
				kind = Rename
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addRecursive(ev.Name)
				}
			}

			w.mu.Lock()
			w.pending[ev.Name] = kind
			w.mu.Unlock()

			if timer == nil {
				timer = time.NewTimer(w.config.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.config.Debounce)
			}
			timerC = timer.C
		case <-timerC:
			flush()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			_ = err
		}
	}
}

// Close stops the watch loop and releases the underlying fsnotify handle.
func (w *Watcher) Close() error {
	w.mu.Lock()
	stopCh := w.stopCh
	w.mu.Unlock()
	if stopCh != nil {
		close(stopCh)
	}
	return w.fsw.Close()
}

func (w *Watcher) shouldIgnore(p string) bool {
	base := filepath.Base(p)
	for _, pattern := range w.config.Ignore {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if strings.Contains(p, string(filepath.Separator)+pattern+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
