package config

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 400 * time.Millisecond

// Watcher reloads the config file when it changes on disk and hands the new
// config to a callback. A reload that fails to parse or validate is logged
// and discarded; the last good config stays in effect.
type Watcher struct {
	path     string
	onReload func(*Config)
	logger   *zap.Logger

	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	timer    *time.Timer
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the config file at path. onReload runs on
// the watcher goroutine after each successful reload.
func NewWatcher(path string, onReload func(*Config), logger *zap.Logger) *Watcher {
	return &Watcher{
		path:     path,
		onReload: onReload,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins watching. It watches the file's directory rather than the file
// itself: editors and config writers typically replace the file, which would
// drop a direct watch. Runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}
	w.watcher = fw
	w.logger.Debug("config watcher starting", zap.String("path", w.path))
	go w.run(ctx)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		if w.watcher != nil {
			_ = w.watcher.Close()
		}
	})
}

func (w *Watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if err != nil {
				w.logger.Debug("config watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", zap.Error(err))
		return
	}
	w.logger.Info("config reloaded", zap.String("path", w.path))
	w.onReload(cfg)
}
