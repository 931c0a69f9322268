package rules

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a rule file whenever it changes on disk, so deployed
// validation policy can be tuned without restarting the host application.
// A reload that fails to parse keeps the last good rule set.
type Watcher struct {
	path string

	// OnReload receives every successfully parsed rule set, including the
	// initial load.
	OnReload func(*RuleSet)

	// OnError receives load and watch failures. Optional.
	OnError func(error)

	mu      sync.Mutex
	current *RuleSet
	fw      *fsnotify.Watcher
	done    chan struct{}
	closed  sync.Once
}

// NewWatcher loads path once and starts watching its directory for changes.
// Watching the directory instead of the file survives the rename dance most
// editors do on save.
func NewWatcher(path string, onReload func(*RuleSet)) (*Watcher, error) {
	w := &Watcher{path: path, OnReload: onReload, done: make(chan struct{})}

	rs, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	w.current = rs
	if onReload != nil {
		onReload(rs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, err
	}
	w.fw = fw
	go w.loop()
	return w, nil
}

// Current returns the most recently loaded rule set.
func (w *Watcher) Current() *RuleSet {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Close stops watching. Safe to call more than once, from any goroutine.
func (w *Watcher) Close() {
	w.closed.Do(func() {
		close(w.done)
		w.fw.Close()
	})
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != filepath.Clean(w.path) {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.reload()
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			if w.OnError != nil {
				w.OnError(err)
			}
		}
	}
}

func (w *Watcher) reload() {
	rs, err := LoadFile(w.path)
	if err != nil {
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}
	w.mu.Lock()
	w.current = rs
	w.mu.Unlock()
	if w.OnReload != nil {
		w.OnReload(rs)
	}
}
