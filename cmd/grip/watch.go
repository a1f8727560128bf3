package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/phanxgames/grip"
)

// watchInterval is how often the scene checks for a pending reload.
const watchInterval = 100 * time.Millisecond

// markupWatch reloads a markup file into a running scene whenever it
// changes on disk. File events arrive on the watcher goroutine; the reload
// itself runs from a scene timer so it never races the host loop.
type markupWatch struct {
	watcher *fsnotify.Watcher
	changed chan struct{}
	done    chan struct{}
	timer   *grip.Timer
}

// watchMarkup starts watching path. reload receives the new file contents
// from inside Scene.Update; a failed reload is logged and the scene keeps
// its current content.
func watchMarkup(s *grip.Scene, path string, reload func(markup string) error) (*markupWatch, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	w := &markupWatch{
		watcher: watcher,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go w.run(filepath.Clean(path))

	var poll func()
	poll = func() {
		select {
		case <-w.changed:
			data, err := os.ReadFile(path)
			if err == nil {
				err = reload(string(data))
			}
			if err != nil {
				log.Printf("grip: reload %s: %v", path, err)
			}
		default:
		}
		w.timer = s.AfterFunc(watchInterval, poll)
	}
	w.timer = s.AfterFunc(watchInterval, poll)
	return w, nil
}

func (w *markupWatch) run(path string) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("grip: watch: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher goroutine and the reload timer.
func (w *markupWatch) Close() error {
	close(w.done)
	w.timer.Stop()
	return w.watcher.Close()
}
