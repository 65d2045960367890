// Package watch converts PolyBridge files as they appear in a directory.
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/ssargent/polyparser/pkg/convert"
)

// DefaultDebounce is the quiet period before a changed file is reported.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports convertible files once they stop changing.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	Events   chan string
	Errors   chan error
	closeCh  chan struct{}
	once     sync.Once
}

// New watches dirs with the default debounce.
func New(dirs ...string) (*Watcher, error) {
	return NewWithDebounce(DefaultDebounce, dirs...)
}

// NewWithDebounce watches dirs. A non-positive debounce selects
// DefaultDebounce.
func NewWithDebounce(debounce time.Duration, dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, fmt.Errorf("watch: no directories given")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	watcher := &Watcher{
		watcher:  w,
		debounce: debounce,
		Events:   make(chan string, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the event
// loop exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	tick := time.NewTicker(w.debounce / 2)
	defer tick.Stop()

	pending := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !Convertible(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case <-tick.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) < w.debounce {
					continue
				}
				delete(pending, name)
				select {
				case w.Events <- name:
				case <-w.closeCh:
					return
				}
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

// Convertible reports whether path names a file the converter handles.
func Convertible(path string) bool {
	kind, _ := convert.Classify(path)
	return kind != convert.KindUnknown && kind != convert.KindSlotTree
}
