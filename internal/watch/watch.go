// Package watch publishes refresh requests when the scanned tree changes.
package watch

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"grepagrip/internal/eventbus"
)

// Directories never worth watching; mirrors the plain backend's exclusions.
var skippedDirs = map[string]bool{
	".git": true, ".hg": true, ".svn": true,
	"node_modules": true, "vendor": true,
	"build": true, ".build": true, "dist": true, "target": true,
	"__pycache__": true,
}

// quiet period before a burst of filesystem events becomes one refresh
const settleDelay = 500 * time.Millisecond

// WatchService watches the scan root and asks for a search refresh after the
// tree settles down.
type WatchService interface {
	Watch(root string) error
	Stop()
}

// watchService is the concrete implementation
type watchService struct {
	bus     eventbus.EventBus
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	settle  *time.Timer
	done    chan struct{}
}

// NewWatchService creates a watch service. It re-arms itself automatically
// when the scan root changes.
func NewWatchService(bus eventbus.EventBus) WatchService {
	ws := &watchService{bus: bus}

	bus.Subscribe(eventbus.EventRootChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.RootChangedEvent); ok {
			if err := ws.Watch(event.Root); err != nil {
				log.Printf("Watch: failed to watch %s: %v", event.Root, err)
				bus.Publish(eventbus.ErrorEvent{
					Message: "cannot watch " + event.Root + " for changes",
					Err:     err,
				})
			}
		}
	})

	return ws
}

// Watch replaces the current watch target with root and all of its
// non-excluded subdirectories.
func (ws *watchService) Watch(root string) error {
	ws.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	ws.mu.Lock()
	ws.watcher = watcher
	ws.done = make(chan struct{})
	done := ws.done
	ws.mu.Unlock()

	count := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err // the root itself must be readable
			}
			return nil // unreadable subtree, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if addErr := watcher.Add(path); addErr != nil {
			log.Printf("Watch: cannot watch %s: %v", path, addErr)
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		watcher.Close()
		return err
	}
	log.Printf("Watch: watching %d directories under %s", count, root)

	go ws.run(watcher, done)
	return nil
}

// Stop tears down the active watcher, if any.
func (ws *watchService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.settle != nil {
		ws.settle.Stop()
		ws.settle = nil
	}
	if ws.done != nil {
		close(ws.done)
		ws.done = nil
	}
	if ws.watcher != nil {
		ws.watcher.Close()
		ws.watcher = nil
	}
}

func (ws *watchService) run(watcher *fsnotify.Watcher, done chan struct{}) {
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			// New directories join the watch set as they appear.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !skippedDirs[filepath.Base(event.Name)] {
						_ = watcher.Add(event.Name)
					}
				}
			}
			ws.scheduleRefresh()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Watch: error: %v", err)

		case <-done:
			return
		}
	}
}

func (ws *watchService) scheduleRefresh() {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.settle != nil {
		ws.settle.Stop()
	}
	ws.settle = time.AfterFunc(settleDelay, func() {
		ws.bus.Publish(eventbus.RefreshRequestedEvent{})
	})
}
