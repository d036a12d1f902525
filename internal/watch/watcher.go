// Package watch reloads a dataset when its file changes on disk.
//
// The parent directory is watched rather than the file itself, because editors
// usually save by writing a temp file and renaming it over the original.
// Bursts of events are coalesced: the callback runs once the file has been
// quiet for the debounce interval.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/bastiangx/traductor/internal/logger"
)

// DefaultDebounce is the quiet period used when none is given.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches one dataset file.
type Watcher struct {
	fw       *fsnotify.Watcher
	debounce time.Duration
	log      *log.Logger
	done     chan struct{}

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// NewWatcher creates a watcher. debounce <= 0 selects DefaultDebounce.
func NewWatcher(debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		debounce: debounce,
		log:      logger.New("watch"),
		done:     make(chan struct{}),
	}, nil
}

// Watch starts monitoring file. onChange runs on its own goroutine with the
// absolute file path after every burst of writes, creates, renames or removals.
func (w *Watcher) Watch(file string, onChange func(path string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	dir := filepath.Dir(absPath)
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.log.Debugf("Watching %s", absPath)

	go w.loop(absPath, onChange)
	return nil
}

func (w *Watcher) loop(target string, onChange func(path string)) {
	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				w.schedule(target, onChange)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("Watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule(target string, onChange func(path string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		stopped := w.stopped
		w.mu.Unlock()
		if !stopped {
			w.log.Debugf("Change detected in %s", target)
			onChange(target)
		}
	})
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.done)
	return w.fw.Close()
}
