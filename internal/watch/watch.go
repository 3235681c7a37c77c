// Package watch implements the `autocoder watch` debounced rerun loop,
// grounded on processor/ast/watcher.go's fsnotify-based file watcher:
// the same single-watch-goroutine-plus-debounce-timer shape, repurposed
// from watching a source tree for re-indexing to watching one blueprint
// file for re-running the control loop.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DebounceDelay is how long to wait for additional writes before
// re-running, absorbing editors that write a file in several small
// operations.
const DebounceDelay = 250 * time.Millisecond

// Watcher watches a single blueprint file and invokes onChange, debounced,
// whenever it's written.
type Watcher struct {
	path    string
	onChange func(ctx context.Context)
	logger  *slog.Logger
	fsw     *fsnotify.Watcher
}

// New constructs a Watcher over a single blueprint file.
func New(path string, logger *slog.Logger, onChange func(ctx context.Context)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{path: filepath.Clean(path), onChange: onChange, logger: logger, fsw: fsw}, nil
}

// Run blocks, invoking onChange on every debounced write to the watched
// file, until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !(ev.Op&(fsnotify.Write|fsnotify.Create) != 0) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(DebounceDelay)
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.onChange(ctx)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}
