// Package watch reports changes to a fixed set of files.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the parent directories of its files, so editors that save
// by writing a new file and renaming it over the old one are still seen.
type Watcher struct {
	w       *fsnotify.Watcher
	files   []string
	changes chan string
	errs    chan error
	done    chan struct{}
}

func New(paths []string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}

	w := &Watcher{
		w:       fw,
		changes: make(chan string, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files = append(w.files, abs)
		dir := filepath.Dir(abs)
		if slices.Contains(fw.WatchList(), dir) {
			continue
		}
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	go w.loop()
	return w, nil
}

// Changes delivers the path of a watched file after it changed. Bursts of
// events collapse into a single pending notification.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

func (w *Watcher) Errors() <-chan error {
	return w.errs
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			// No need to react to chmod.
			if event.Has(fsnotify.Chmod) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !slices.Contains(w.files, name) {
				continue
			}
			slog.Debug("watched file changed", "path", name, "op", event.Op.String())
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}
