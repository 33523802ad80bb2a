// Package watcher turns file-system activity under the exercises directory
// into debounced "something changed" signals.
package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mark3labs/oscamp/internal/apperr"
	"github.com/mark3labs/oscamp/internal/logger"
)

// DefaultWindow is the quiet period that absorbs an editor's multi-write save.
const DefaultWindow = 300 * time.Millisecond

// DefaultExcludes are directory names never watched.
var DefaultExcludes = []string{".git", "target"}

// FileWatcher recursively watches one directory. Create and write events
// become inert signals; the changed file's identity is not reported.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	root    string
	window  time.Duration
	ignore  *ignoreSet
	signals chan struct{} // one slot: raw, undebounced
	changes <-chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// New creates a watcher for root. excludeDirs are directory names that are
// never watched; .gitignore rules in root are loaded as well. A window of
// zero uses DefaultWindow.
func New(root string, window time.Duration, excludeDirs []string) (*FileWatcher, error) {
	if window <= 0 {
		window = DefaultWindow
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperr.New(apperr.WatcherUnavailable, "watch "+root, err)
	}
	if !info.IsDir() {
		return nil, apperr.Errorf(apperr.WatcherUnavailable, "watch %s: not a directory", root)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperr.New(apperr.WatcherUnavailable, "create watcher", err)
	}

	ignore := &ignoreSet{}
	ignore.loadIgnoreFile(filepath.Join(root, ".gitignore"))
	for _, d := range excludeDirs {
		ignore.add(d + "/")
	}

	fw := &FileWatcher{
		watcher: w,
		root:    root,
		window:  window,
		ignore:  ignore,
		signals: make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	return fw, nil
}

// Start adds watches for the whole tree and starts the event loop.
func (fw *FileWatcher) Start() error {
	if err := fw.watcher.Add(fw.root); err != nil {
		fw.watcher.Close()
		return apperr.New(apperr.WatcherUnavailable, "watch "+fw.root, err)
	}
	if err := fw.addRecursive(fw.root); err != nil {
		fw.watcher.Close()
		return apperr.New(apperr.WatcherUnavailable, "watch "+fw.root, err)
	}

	fw.changes = Debounce(fw.done, fw.signals, fw.window)
	go fw.eventLoop()
	logger.Info("FileWatcher started for %s (%d ignore rules, %s window)", fw.root, len(fw.ignore.rules), fw.window)
	return nil
}

// Stop shuts down the watcher, event loop and debounce stage. Only call it
// after a successful Start.
func (fw *FileWatcher) Stop() error {
	close(fw.done)
	<-fw.stopped
	return fw.watcher.Close()
}

// Changes delivers one signal per debounced burst of file activity. It is
// nil until Start succeeds.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// addRecursive walks the tree under dir and watches every directory that
// is not ignored. Unreadable subdirectories are skipped.
func (fw *FileWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			logger.Warn("FileWatcher: skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() || p == fw.root {
			return nil
		}

		if rel, relErr := filepath.Rel(fw.root, p); relErr == nil && fw.ignore.ignored(rel, true) {
			return filepath.SkipDir
		}

		if err := fw.watcher.Add(p); err != nil {
			logger.Warn("FileWatcher: failed to watch %s: %v", p, err)
			if strings.Contains(err.Error(), "no space left on device") ||
				strings.Contains(err.Error(), "too many open files") {
				logger.Error("FileWatcher: inotify watch limit reached. Increase fs.inotify.max_user_watches")
				return filepath.SkipDir
			}
		}
		return nil
	})
}

func (fw *FileWatcher) eventLoop() {
	defer close(fw.stopped)

	for {
		select {
		case <-fw.done:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("FileWatcher error: %v", err)
		}
	}
}

// handleEvent forwards create and write events that are not ignored.
// Remove, rename and chmod never trigger a retest.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	rel, err := filepath.Rel(fw.root, event.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}

	isDir := false
	if info, statErr := os.Stat(event.Name); statErr == nil {
		isDir = info.IsDir()
	}
	if fw.ignore.ignored(rel, isDir) {
		return
	}

	if event.Has(fsnotify.Create) && isDir {
		if err := fw.addRecursive(event.Name); err != nil {
			logger.Warn("FileWatcher: failed to watch new dir %s: %v", event.Name, err)
		}
	}

	logger.Debug("FileWatcher: %s %s", event.Op, rel)
	notify(fw.signals)
}

// notify performs a non-blocking send; a signal already queued absorbs it.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// drain empties ch without blocking.
func drain(ch <-chan struct{}) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// Debounce collapses bursts on in into single signals on the returned
// channel. On the first pending signal it drains in, waits window, drains
// again, then emits once. The output holds at most one pending signal.
// The goroutine exits when done is closed.
func Debounce(done <-chan struct{}, in <-chan struct{}, window time.Duration) <-chan struct{} {
	out := make(chan struct{}, 1)
	go func() {
		timer := time.NewTimer(window)
		timer.Stop()
		defer timer.Stop()

		for {
			select {
			case <-done:
				return
			case <-in:
			}

			drain(in)
			timer.Reset(window)
			select {
			case <-done:
				return
			case <-timer.C:
			}
			drain(in)
			notify(out)
		}
	}()
	return out
}

