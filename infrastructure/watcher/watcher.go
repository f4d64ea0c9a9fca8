// Package watcher observes working copies on disk so the client can schedule
// shallow status refreshes when files change underneath it.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"
)

// Watcher maps filesystem events back to the working-copy root that owns
// them and invokes the notify callback with that root. Events under .svn
// metadata directories are ignored; newly created directories are added to
// the watch set so deep trees keep reporting.
type Watcher struct {
	fs     *fsnotify.Watcher
	notify func(root string)

	mu    sync.Mutex
	roots []string
	done  chan struct{}
	once  sync.Once
}

// New creates a watcher delivering change notifications to notify. Call
// Close when done.
func New(notify func(root string)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		fs:     fs,
		notify: notify,
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Watch registers a working-copy root and all its subdirectories except the
// .svn metadata tree.
func (w *Watcher) Watch(root string) error {
	root = filepath.Clean(root)

	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".svn" {
			return filepath.SkipDir
		}
		if addErr := w.fs.Add(path); addErr != nil {
			logger.Warnf("Could not watch %q: %v", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("failed to watch %q: %w", root, walkErr)
	}

	w.mu.Lock()
	w.roots = append(w.roots, root)
	w.mu.Unlock()

	logger.Debugf("Watching working copy %q", root)
	return nil
}

// Close stops the event loop and releases the underlying watcher.
func (w *Watcher) Close() error {
	w.once.Do(func() { close(w.done) })
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warnf("Watcher error: %v", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)
	if isMetadataPath(path) {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if addErr := w.fs.Add(path); addErr != nil {
				logger.Warnf("Could not watch new directory %q: %v", path, addErr)
			}
		}
	}

	if root, ok := w.owningRoot(path); ok {
		w.notify(root)
	}
}

// owningRoot resolves the registered working-copy root containing path.
func (w *Watcher) owningRoot(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, root := range w.roots {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return root, true
		}
	}
	return "", false
}

func isMetadataPath(path string) bool {
	sep := string(filepath.Separator)
	return strings.Contains(path, sep+".svn"+sep) || strings.HasSuffix(path, sep+".svn")
}
