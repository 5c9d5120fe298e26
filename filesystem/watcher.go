package filesystem

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const debounceDuration = 100 * time.Millisecond

// Watcher monitors a project for changes that affect the spec list.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	ignorer   *Ignorer
	logger    *log.Logger
	Events    chan string // Carries the last changed path of a debounced burst
	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches root and every non-ignored directory below it.
func NewWatcher(root string, ignorer *Ignorer, logger *log.Logger) (*Watcher, error) {
	if ignorer == nil {
		ignorer = NewIgnorer(root)
	}
	if logger == nil {
		logger = log.Default()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		ignorer:   ignorer,
		logger:    logger,
		Events:    make(chan string, 10),
		done:      make(chan struct{}),
	}

	// fsnotify is not recursive, so every directory is added explicitly.
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.startLoop()

	return w, nil
}

// Close stops the watcher and releases resources. It is safe to call more
// than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.done)
		w.fsWatcher.Close()
	})
}

func (w *Watcher) shouldIgnore(path string) bool {
	return w.ignorer.ShouldIgnore(path)
}

func (w *Watcher) startLoop() {
	var timer *time.Timer

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.shouldIgnore(event.Name) || event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if err := w.fsWatcher.Add(event.Name); err != nil {
						w.logger.Warn("cannot watch directory", "path", event.Name, "err", err)
					}
				}
			}

			name := event.Name
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, func() {
				select {
				case w.Events <- name:
				case <-w.done:
				}
			})

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "err", err)
		}
	}
}
