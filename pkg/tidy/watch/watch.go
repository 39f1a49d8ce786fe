// Package watch provides a foreground watch mode that organizes files
// as they appear in a directory. It watches the target non-recursively
// and applies the same classification and collision rules as a one-shot
// organize run.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/classify"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/logging"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/organize"
	"github.com/pawel-mazurkiewicz/tidy/pkg/tidy/types"
)

var logger = logging.Get("watch")

// DefaultSettle is the debounce delay applied when none is configured.
const DefaultSettle = 500 * time.Millisecond

// Watcher organizes files created in a directory as they settle.
type Watcher struct {
	dir        string
	classifier *classify.Classifier
	settle     time.Duration
	fsw        *fsnotify.Watcher

	// OnMove, when set, is called after every attempted move.
	OnMove func(types.MoveOutcome)

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// New creates a Watcher for dir. The settle duration is how long a
// file must go without write events before it is moved; zero means
// DefaultSettle.
func New(dir string, c *classify.Classifier, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", dir)
	}

	if settle <= 0 {
		settle = DefaultSettle
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	return &Watcher{
		dir:        abs,
		classifier: c,
		settle:     settle,
		fsw:        fsw,
		pending:    make(map[string]*time.Timer),
	}, nil
}

// Run watches until the context is cancelled. Per-file failures are
// logged and watching continues; only watcher-level errors end the run.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %q: %w", w.dir, err)
	}
	defer w.close()

	logger.Info("watching", "dir", w.dir, "settle", w.settle)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

// handleEvent debounces create and write events per file name: each
// new event resets the settle timer, so a file still being written is
// not moved mid-download.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return
	}

	name := filepath.Base(event.Name)
	if w.classifier.ShouldSkip(name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.pending[name]; ok {
		timer.Stop()
	}
	w.pending[name] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, name)
		w.mu.Unlock()
		w.organizeOne(name)
	})
}

// organizeOne classifies and moves a single settled file.
func (w *Watcher) organizeOne(name string) {
	path := filepath.Join(w.dir, name)

	info, err := os.Lstat(path)
	if err != nil {
		// Gone again before the settle elapsed.
		return
	}
	if info.IsDir() || !info.Mode().IsRegular() {
		return
	}

	category := w.classifier.Classify(name)
	if category == classify.Unknown {
		logger.Info("unknown type, left in place", "name", name)
		return
	}

	dir := filepath.Join(w.dir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("creating category folder failed", "category", category, "error", err)
		return
	}

	dest := organize.FreeDestination(dir, name)
	outcome := types.MoveOutcome{Source: path, Dest: dest, Category: category}
	if err := os.Rename(path, dest); err != nil {
		outcome.Dest = ""
		outcome.Error = err.Error()
		logger.Error("move failed", "name", name, "error", err)
	} else {
		logger.Info("moved", "name", name, "category", category)
	}

	if w.OnMove != nil {
		w.OnMove(outcome)
	}
}

// close stops pending timers and the underlying watcher.
func (w *Watcher) close() {
	w.mu.Lock()
	for name, timer := range w.pending {
		timer.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()

	if err := w.fsw.Close(); err != nil {
		logger.Warn("closing watcher", "error", err)
	}
}
