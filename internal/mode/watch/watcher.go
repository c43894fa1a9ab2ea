package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/outbreak/internal/log"
)

// Watcher turns raw filesystem events on one snapshot file into coalesced
// change notifications. The parent directory is watched rather than the file
// itself because atomic saves replace the file, which would otherwise drop
// the watch.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan struct{}
	debounce time.Duration
	path     string
}

// NewWatcher starts watching the snapshot at path. Notifications are
// delivered at most once per debounce window.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w := &Watcher{
		fsw:      fsw,
		events:   make(chan struct{}, 1),
		debounce: debounce,
		path:     filepath.Clean(path),
	}
	log.SafeGo("watch.forward", w.forward)
	return w, nil
}

// Events delivers one value per coalesced change to the watched file.
func (w *Watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the underlying watcher. The forwarding goroutine exits once
// the event stream drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// forward runs the coalescing loop. A timer opens on the first relevant
// event and everything arriving before it fires folds into one notification.
func (w *Watcher) forward() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			}

		case <-timerC:
			timer = nil
			timerC = nil
			// Drop the notification if the UI has one pending already
			select {
			case w.events <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn(log.CatUI, "file watcher error", "error", err.Error())
		}
	}
}
