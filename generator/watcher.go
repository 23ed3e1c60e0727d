package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// WatcherConfig configures the schema watcher
type WatcherConfig struct {
	// Patterns are the doublestar globs of schema files
	Patterns []string

	// DebounceDelay is how long to wait for more changes before regenerating
	DebounceDelay time.Duration

	// Logger for logging events
	Logger *slog.Logger
}

// WatchEvent reports one regeneration
type WatchEvent struct {
	// Paths are the changed schema files
	Paths []string

	// Result is the generation result (nil on error)
	Result *Result

	// Error if generation failed
	Error error
}

// Runner regenerates documentation.
type Runner interface {
	Run(ctx context.Context) (*Result, error)
}

// Watcher regenerates documentation whenever a matching schema file changes
type Watcher struct {
	config  WatcherConfig
	runner  Runner
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	// Debouncing: collect changes before regenerating
	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op // path → most recent operation

	// Content hash of the schema set at the last run
	lastHash string

	events chan WatchEvent
}

// NewWatcher creates a new schema watcher
func NewWatcher(runner Runner, config WatcherConfig) (*Watcher, error) {
	if len(config.Patterns) == 0 {
		return nil, errors.New("no schema patterns to watch")
	}
	patterns := make([]string, len(config.Patterns))
	for i, p := range config.Patterns {
		if !doublestar.ValidatePathPattern(p) {
			return nil, fmt.Errorf("invalid schema pattern: %s", p)
		}
		patterns[i] = filepath.Clean(p)
	}
	config.Patterns = patterns

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 100 * time.Millisecond
	}

	return &Watcher{
		config:  config,
		runner:  runner,
		watcher: fsw,
		logger:  logger,
		pending: make(map[string]fsnotify.Op),
		events:  make(chan WatchEvent, 16),
	}, nil
}

// Events returns the channel of regeneration events
func (w *Watcher) Events() <-chan WatchEvent {
	return w.events
}

// Start runs an initial generation, then watches the schema directories
// until ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	for _, p := range w.config.Patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		if err := w.addWatchesRecursive(filepath.FromSlash(base)); err != nil {
			return err
		}
	}

	w.regenerate(ctx, nil)

	go w.processEvents(ctx)

	w.logger.Info("Schema watcher started",
		"patterns", w.config.Patterns,
		"debounce", w.config.DebounceDelay)

	return nil
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to all directories below root
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Only watch directories
		if !d.IsDir() {
			return nil
		}

		// Skip hidden directories
		if path != root && isHidden(path) {
			return filepath.SkipDir
		}

		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		} else {
			w.logger.Debug("Watching directory", "path", path)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent records a change to a matching schema file
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.handleNewDirectory(path)
			return
		}
	}

	if !w.matches(path) {
		return
	}

	w.pendingMu.Lock()
	w.pending[path] = event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Schema change detected",
		"path", path,
		"op", event.Op.String())
}

// handleNewDirectory adds a watch to a newly created directory
func (w *Watcher) handleNewDirectory(path string) {
	if isHidden(path) {
		return
	}

	if err := w.addWatchesRecursive(path); err != nil {
		w.logger.Warn("Failed to watch new directory",
			"path", path,
			"error", err)
	}
}

// flushPending regenerates once for all accumulated changes
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	sort.Strings(paths)
	w.regenerate(ctx, paths)
}

// regenerate runs the generator unless the schema content is unchanged
// since the last successful run.
func (w *Watcher) regenerate(ctx context.Context, paths []string) {
	hash := w.schemaHash()
	if paths != nil && hash != "" && hash == w.lastHash {
		w.logger.Debug("Schema content unchanged, skipping", "paths", paths)
		return
	}

	res, err := w.runner.Run(ctx)
	if err == nil {
		w.lastHash = hash
	}
	w.sendEvent(WatchEvent{Paths: paths, Result: res, Error: err})
}

// schemaHash hashes the names and contents of every matching file.
func (w *Watcher) schemaHash() string {
	h := sha256.New()
	var files []string
	for _, p := range w.config.Patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return ""
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return ""
		}
		h.Write([]byte(f))
		h.Write([]byte{0})
		h.Write(data)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// matches reports whether path matches one of the schema patterns
func (w *Watcher) matches(path string) bool {
	path = filepath.Clean(path)
	for _, p := range w.config.Patterns {
		if ok, _ := doublestar.PathMatch(p, path); ok {
			return true
		}
	}
	return false
}

// sendEvent sends an event to the output channel
func (w *Watcher) sendEvent(event WatchEvent) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event", "paths", event.Paths)
	default:
		w.logger.Warn("Event channel full, dropping event",
			"paths", event.Paths)
	}
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return len(base) > 1 && base[0] == '.'
}
