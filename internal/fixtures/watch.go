package fixtures

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
)

// DefaultDebounce batches the burst of events an editor save produces.
const DefaultDebounce = 300 * time.Millisecond

// Watcher re-reads a fixtures file whenever it changes and hands the
// parsed dataset to a callback.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context, []casestudy.Detail) error
	logger   *slog.Logger
}

// NewWatcher watches path. A zero debounce selects DefaultDebounce.
func NewWatcher(path string, debounce time.Duration, onChange func(context.Context, []casestudy.Detail) error, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
}

// Run blocks until ctx is done. The parent directory is watched rather than
// the file, so editors that save by rename keep being tracked. Files that
// fail to parse are logged and skipped.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}
	w.logger.Info("watching fixtures", "path", w.path)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("fixtures watcher error", "error", err)

		case <-timer.C:
			w.reload(ctx)
		}
	}
}

func (w *Watcher) reload(ctx context.Context) {
	details, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("fixtures reload skipped", "path", w.path, "error", err)
		return
	}
	if err := w.onChange(ctx, details); err != nil {
		w.logger.Warn("fixtures reload failed", "path", w.path, "error", err)
		return
	}
	w.logger.Info("fixtures reloaded", "path", w.path, "count", len(details))
}
