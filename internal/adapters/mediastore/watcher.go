package mediastore

import (
	"fmt"
	"log"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the library root and reports when its contents change
// after the initial scan. It only signals staleness; it never triggers a
// re-enrichment (the pipeline is single-shot per provider lifetime).
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// WatchRoot starts watching root and invokes onChange for every create,
// write, remove or rename under it.
func WatchRoot(root string, onChange func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("mediastore: create watcher: %w", err)
	}
	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("mediastore: watch %s: %w", root, err)
	}

	w := &Watcher{fsw: fsw, done: make(chan struct{})}

	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-fsw.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
					log.Printf("DEBUG mediastore: library changed: %s", ev)
					onChange()
				}
			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				log.Printf("WARN mediastore: watcher error: %v", err)
			}
		}
	}()

	return w, nil
}

// Close stops the watcher and waits for its event loop to exit.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
