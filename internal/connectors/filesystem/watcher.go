// Package filesystem watches a directory tree for new or rewritten
// submission files.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/holdings-cli/internal/logger"
)

// DefaultSettle is how long a file must be quiet before it is reported.
const DefaultSettle = 500 * time.Millisecond

// Watcher reports submission files created or written under a root directory.
// Subdirectories, including ones created while watching, are watched too.
type Watcher struct {
	root   string
	settle time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for root. A non-positive settle uses DefaultSettle.
func NewWatcher(root string, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{root: root, settle: settle}
}

// Watch starts watching and returns a channel of submission paths. A path
// is sent once writes to it have stopped for the settle period. The channel
// is closed when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	info, err := os.Stat(w.root)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", w.root)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := addTree(fw, w.root); err != nil {
		fw.Close()
		return nil, err
	}

	w.mu.Lock()
	w.watcher = fw
	w.mu.Unlock()

	out := make(chan string)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- string) {
	defer close(out)
	defer fw.Close()

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if w.handleNewDir(fw, event) {
				continue
			}
			if path, ok := w.handleFsEvent(event); ok {
				pending[path] = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)

		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleNewDir starts watching directories created under the root.
func (w *Watcher) handleNewDir(fw *fsnotify.Watcher, event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) || isHidden(event.Name) {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := addTree(fw, event.Name); err != nil {
		logger.Warn("Watching %s: %v", event.Name, err)
	}
	return true
}

// handleFsEvent returns the submission path an event refers to.
// Only creates and writes of visible submission files count.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) || !IsSubmission(event.Name) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return "", false
	}
	return event.Name, true
}

// Close stops a running watch.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

// IsSubmission reports whether path names a submission text file.
func IsSubmission(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".txt.gz")
}

func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

// addTree watches dir and every visible directory below it.
func addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(path) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
