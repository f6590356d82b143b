package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadFunc is called with the path of a watched file that changed.
type ReloadFunc func(path string) error

// Watcher reloads the compared images when they change on disk. Reloads are
// retried with exponential backoff because editors and exporters often
// leave a file half written when the first event fires.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	files     map[string]bool
	reload    ReloadFunc
	log       *zap.Logger

	MaxRetries   uint64
	InitialDelay time.Duration
	MaxDelay     time.Duration

	// ctx is cancelled by Stop; it also interrupts a pending backoff sleep.
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWatcher creates a watcher for the given files.
func NewWatcher(paths []string, reload ReloadFunc, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fs watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		fsWatcher:    fsWatcher,
		files:        make(map[string]bool),
		reload:       reload,
		log:          log.Named("watcher"),
		MaxRetries:   5,
		InitialDelay: 50 * time.Millisecond,
		MaxDelay:     2 * time.Second,
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			cancel()
			fsWatcher.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		w.files[abs] = true
	}
	return w, nil
}

// Start watches the directories holding the files and begins the event loop.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		// Watching the directory survives editors that replace the file.
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.eventLoop()
	return nil
}

// Stop ends the event loop and releases the fs watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.cancel()
		err = w.fsWatcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if !w.files[path] {
				continue
			}
			w.reloadWithRetry(path)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("fs watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.InitialDelay
	b.MaxInterval = w.MaxDelay
	b.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, w.MaxRetries), w.ctx)
}

func (w *Watcher) reloadWithRetry(path string) {
	operation := func() error {
		if err := w.ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}
		return w.reload(path)
	}
	err := backoff.RetryNotify(operation, w.newBackOff(), func(err error, next time.Duration) {
		w.log.Debug("reload failed, retrying",
			zap.String("path", path),
			zap.Duration("next", next),
			zap.Error(err),
		)
	})
	if w.ctx.Err() != nil {
		w.log.Debug("reload abandoned on stop", zap.String("path", path))
		return
	}
	if err != nil {
		w.log.Warn("giving up reload", zap.String("path", path), zap.Error(err))
		return
	}
	w.log.Info("image reloaded", zap.String("path", path))
}
