// Package observer watches the artifact directory during a live run and
// reports when the trainer starts materializing output.
package observer

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ArtifactCallback is called with paths created or written under the
// artifact root since the last debounce window.
type ArtifactCallback func(paths []string)

// ArtifactWatcher monitors the artifact root for the trainer's output
// directory and checkpoint files appearing.
type ArtifactWatcher struct {
	watcher  *fsnotify.Watcher
	callback ArtifactCallback
	debounce time.Duration

	logDir string // output directory name to watch for

	pending map[string]struct{}
	timer   *time.Timer
	mu      sync.Mutex

	done chan struct{}
}

// NewArtifactWatcher creates a watcher for the given artifact root. Only
// events for the expected output directory (and anything under it) reach
// the callback.
func NewArtifactWatcher(artifactDir, logDir string, callback ArtifactCallback) (*ArtifactWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	aw := &ArtifactWatcher{
		watcher:  watcher,
		callback: callback,
		debounce: 500 * time.Millisecond, // Checkpoint writes come in bursts
		logDir:   logDir,
		pending:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}

	if err := watcher.Add(artifactDir); err != nil {
		watcher.Close()
		return nil, err
	}

	go aw.loop()
	return aw, nil
}

func (aw *ArtifactWatcher) loop() {
	for {
		select {
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !aw.isOutputPath(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				// New output directory: descend so checkpoint files are seen
				aw.watcher.Add(event.Name)
			}
			aw.queue(event.Name)
		case _, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
		case <-aw.done:
			return
		}
	}
}

// isOutputPath reports whether path is the expected output directory or
// inside it.
func (aw *ArtifactWatcher) isOutputPath(path string) bool {
	base := filepath.Base(path)
	if base == aw.logDir {
		return true
	}
	dir := filepath.Dir(path)
	return filepath.Base(dir) == aw.logDir || strings.Contains(dir, string(filepath.Separator)+aw.logDir+string(filepath.Separator))
}

func (aw *ArtifactWatcher) queue(path string) {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	aw.pending[path] = struct{}{}
	if aw.timer != nil {
		aw.timer.Stop()
	}
	aw.timer = time.AfterFunc(aw.debounce, aw.flush)
}

func (aw *ArtifactWatcher) flush() {
	aw.mu.Lock()
	paths := make([]string, 0, len(aw.pending))
	for p := range aw.pending {
		paths = append(paths, p)
	}
	aw.pending = make(map[string]struct{})
	aw.mu.Unlock()

	if len(paths) > 0 && aw.callback != nil {
		aw.callback(paths)
	}
}

// Stop stops watching and releases the underlying watcher.
func (aw *ArtifactWatcher) Stop() {
	close(aw.done)
	aw.watcher.Close()

	aw.mu.Lock()
	if aw.timer != nil {
		aw.timer.Stop()
	}
	aw.mu.Unlock()
}
