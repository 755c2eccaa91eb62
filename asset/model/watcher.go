package model

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Writes to the model file that are closer together than this are coalesced
// into a single change notification.
const defaultDebounce = 100 * time.Millisecond

// Watcher reports changes to a model file. The directory containing the file
// is watched so that editors which replace files on save are handled.
type Watcher struct {
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration

	// Changes emits the model path once per burst of writes.
	Changes chan string
	Errors  chan error

	closeCh chan struct{}
	doneCh  chan struct{}
	once    sync.Once
}

// Watch the model file at path for changes.
func NewWatcher(path string) (*Watcher, error) {
	return newWatcher(path, defaultDebounce)
}

func newWatcher(path string, debounce time.Duration) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(filepath.Dir(target)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher:  w,
		target:   target,
		debounce: debounce,
		Changes:  make(chan string, 1),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Stop watching. The Changes and Errors channels are closed once the
// watcher goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.doneCh
	})
	return err
}

func (w *Watcher) run() {
	defer func() {
		close(w.Changes)
		close(w.Errors)
		close(w.doneCh)
	}()

	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != w.target {
				continue
			}
			pending = time.After(w.debounce)
		case <-pending:
			pending = nil
			select {
			case w.Changes <- w.target:
			case <-w.closeCh:
				return
			default:
				// A change notification is already queued
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
