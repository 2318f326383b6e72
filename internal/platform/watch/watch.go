package watch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 250 * time.Millisecond

// Dir reports changes inside one directory, coalescing bursts of events
// (SQLite touches the db, journal and wal files on a single write).
type Dir struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *zap.Logger
}

func NewDir(path string, logger *zap.Logger) (*Dir, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &Dir{watcher: watcher, debounce: defaultDebounce, logger: logger}, nil
}

// Run delivers one signal on the returned channel per settled burst of
// writes. The channel closes when ctx ends.
func (d *Dir) Run(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer d.watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-d.watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(d.debounce)
				} else {
					timer.Reset(d.debounce)
				}
				fire = timer.C
			case err, ok := <-d.watcher.Errors:
				if !ok {
					return
				}
				d.logger.Warn("watch error", zap.Error(err))
			case <-fire:
				fire = nil
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out
}
