package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reapplies a config file whenever it is written, created or
// renamed into place. Removing the file keeps the last applied state.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onReload func(*Config, error)
	done     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// Watch starts watching the config file at path. The containing directory
// is watched so that editors replacing the file are noticed. onReload, if
// non-nil, is called after every reload attempt with the loaded config
// and any load or apply error. Watch does not apply the file initially;
// use LoadAndApply for that.
func Watch(path string, onReload func(*Config, error)) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{
		path:     abs,
		watcher:  fw,
		onReload: onReload,
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Path returns the absolute path of the watched file
func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				w.reload()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(nil, fmt.Errorf("watch %s: %w", w.path, err))
		case <-w.done:
			return
		}
	}
}

func (w *Watcher) reload() {
	// Truncation shows up as a write of an empty file
	if fi, err := os.Stat(w.path); err == nil && fi.Size() == 0 {
		return
	}
	cfg, err := LoadAndApply(w.path)
	w.notify(cfg, err)
}

func (w *Watcher) notify(cfg *Config, err error) {
	if w.onReload != nil {
		w.onReload(cfg, err)
	}
}

// Close stops the watcher and waits for a running reload to finish
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
