package blog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Store holds the current snapshot of the content directory. Readers take
// the snapshot once per request; reloads build a new collection and swap it
// in atomically. A failed reload leaves the previous snapshot in place.
type Store struct {
	// Debounce is how long Watch waits after the last filesystem event before
	// reloading.
	Debounce time.Duration

	fsys    fs.FS
	opts    Options
	current atomic.Pointer[Collection]
	reload  sync.Mutex
}

// NewStore performs the initial load. Unlike later reloads, a failure here
// is returned since there is no previous snapshot to fall back on.
func NewStore(fsys fs.FS, opts Options) (*Store, error) {
	s := Store{Debounce: defaultDebounce, fsys: fsys, opts: opts}
	c, err := Load(fsys, opts)
	if err != nil {
		return nil, err
	}
	s.current.Store(c)
	return &s, nil
}

func (s *Store) Snapshot() *Collection {
	return s.current.Load()
}

// Reload rereads the content directory and replaces the snapshot.
func (s *Store) Reload() error {
	s.reload.Lock()
	defer s.reload.Unlock()

	c, err := Load(s.fsys, s.opts)
	if err != nil {
		return fmt.Errorf("reloading content: %w", err)
	}
	s.current.Store(c)
	slog.Info("reloaded content", "posts", c.Len())
	return nil
}

// Watch reloads the store whenever files under `root` change. `root` must be
// the OS directory backing the store's filesystem. A missing `root` is
// watched for through its parent. Watch returns when `ctx` is done.
func (s *Store) Watch(ctx context.Context, root string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching `%s`: %w", root, err)
	}
	defer watcher.Close()

	root = filepath.Clean(root)
	if err := watchTree(watcher, root); errors.Is(err, fs.ErrNotExist) && !isDir(root) {
		// picked up by the Create event once the directory appears
		parent := filepath.Dir(root)
		if err := watcher.Add(parent); err != nil {
			slog.Warn("content directory missing, not watching", "path", root, "err", err)
		} else {
			slog.Warn("content directory missing, waiting for it", "path", root)
		}
	} else if err != nil {
		return fmt.Errorf("watching `%s`: %w", root, err)
	}

	var timer *time.Timer
	var pending <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !within(root, event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) &&
				!event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("content changed", "path", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watchTree(watcher, event.Name); err != nil {
					slog.Warn("watching new directory", "path", event.Name, "err", err)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(s.Debounce)
			pending = timer.C
		case <-pending:
			pending = nil
			if err := s.Reload(); err != nil {
				slog.Error("keeping previous content snapshot", "err", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(p)
	})
}

// within reports whether `p` is `root` or below it. Siblings show up when
// only the parent of a missing root is watched.
func within(root, p string) bool {
	p = filepath.Clean(p)
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

const defaultDebounce = 250 * time.Millisecond
