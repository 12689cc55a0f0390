package updates

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"meetingsManagement/internal/logging"
)

// Watcher watches the static asset directory. It publishes offline-ready
// once the assets are indexed at start and update-available whenever the
// asset version changes on disk.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	notifier *Notifier
	debounce time.Duration
	logger   *zap.Logger
	version  string
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for dir. Rapid changes are coalesced within debounce.
func NewWatcher(dir string, notifier *Notifier, debounce time.Duration, logger *zap.Logger) (*Watcher, error) {
	if notifier == nil {
		return nil, errors.New("notifier is required")
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}
	return &Watcher{
		watcher:  fw,
		dir:      dir,
		notifier: notifier,
		debounce: debounce,
		logger:   logging.OrNop(logger),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Version returns the current asset version.
func (w *Watcher) Version() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.version
}

// Start indexes the assets, publishes offline-ready and begins watching.
// It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dirs, version, err := scanAssets(w.dir)
	if err != nil {
		w.stopRunning()
		return fmt.Errorf("index assets: %w", err)
	}
	for _, d := range dirs {
		if err := w.watcher.Add(d); err != nil {
			w.stopRunning()
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	w.mu.Lock()
	w.version = version
	w.mu.Unlock()

	w.logger.Info("static assets indexed", zap.String("dir", w.dir), zap.String("version", version))
	w.notifier.Publish(Event{Kind: OfflineReady, Version: version})

	go w.run(ctx)
	return nil
}

func (w *Watcher) stopRunning() {
	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	close(w.doneCh)
	_ = w.watcher.Close()
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		w.logger.Warn("close asset watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var pending <-chan time.Time
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				// New subdirectories are watched too.
				_ = w.watcher.Add(ev.Name)
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("asset watcher error", zap.Error(err))
		case <-pending:
			pending = nil
			w.rescan()
		}
	}
}

func (w *Watcher) rescan() {
	_, version, err := scanAssets(w.dir)
	if err != nil {
		w.logger.Warn("rescan assets", zap.Error(err))
		return
	}
	w.mu.Lock()
	changed := version != w.version
	w.version = version
	w.mu.Unlock()
	if !changed {
		return
	}
	w.logger.Info("new static asset version", zap.String("version", version))
	w.notifier.Publish(Event{Kind: UpdateAvailable, Version: version})
}

// scanAssets returns every directory under root and a version hash over
// file paths, sizes and modification times.
func scanAssets(root string) ([]string, string, error) {
	var dirs []string
	var entries []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		entries = append(entries, fmt.Sprintf("%s:%d:%d", filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano()))
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	sort.Strings(entries)
	h := sha256.New()
	for _, e := range entries {
		h.Write([]byte(e))
		h.Write([]byte{'\n'})
	}
	return dirs, hex.EncodeToString(h.Sum(nil))[:12], nil
}
