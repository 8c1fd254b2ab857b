// Package watcher reports debounced batches of changed Swift sources.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"swiftslice/internal/engine/parser"
	"swiftslice/internal/shared/observability"
	"swiftslice/internal/shared/util"

	"github.com/fsnotify/fsnotify"
)

type Options struct {
	Debounce time.Duration
	// Filter skips excluded directories and files, matched relative to
	// the watched root.
	Filter *util.PathFilter
	// Limiter caps how often onChange runs. Nil means unlimited.
	Limiter *util.RunLimiter
	Logger  *slog.Logger
}

type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration
	filter    *util.PathFilter
	limiter   *util.RunLimiter
	logger    *slog.Logger
	onChange  func(context.Context, []string)

	root       string
	ctx        context.Context
	callbackMu sync.Mutex

	pending   map[string]time.Time
	pendingMu sync.Mutex
	timer     *time.Timer
}

func NewWatcher(opts Options, onChange func(context.Context, []string)) (*Watcher, error) {
	if onChange == nil {
		return nil, os.ErrInvalid
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  opts.Debounce,
		filter:    opts.Filter,
		limiter:   opts.Limiter,
		logger:    opts.Logger,
		onChange:  onChange,
		ctx:       context.Background(),
		pending:   make(map[string]time.Time),
	}, nil
}

// Watch registers root recursively and starts delivering events until ctx
// is done or Close is called.
func (w *Watcher) Watch(ctx context.Context, root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	w.root = abs
	w.ctx = ctx

	if err := w.watchRecursive(abs); err != nil {
		return err
	}

	go w.run()
	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return nil
}

func (w *Watcher) watchRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return w.fsWatcher.Add(path)
		}

		return nil
	})
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			observability.WatcherEventsTotal.Inc()

			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					if !w.shouldExcludeDir(event.Name) {
						if err := w.watchRecursive(event.Name); err != nil {
							w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
						} else {
							w.enqueueExistingFiles(event.Name)
						}
					}
					continue
				}
			}

			if w.shouldExcludeFile(event.Name) {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) scheduleChange(path string) {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()

	w.pending[path] = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}

	w.timer = time.AfterFunc(w.debounce, func() {
		w.flushChanges()
	})
}

func (w *Watcher) flushChanges() {
	w.pendingMu.Lock()
	paths := util.SortedStringKeys(w.pending)
	w.pending = make(map[string]time.Time)
	w.pendingMu.Unlock()

	if len(paths) == 0 {
		return
	}

	w.callbackMu.Lock()
	defer w.callbackMu.Unlock()
	if err := w.limiter.Wait(w.ctx); err != nil {
		return
	}
	w.onChange(w.ctx, paths)
}

func (w *Watcher) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}

func (w *Watcher) shouldExcludeDir(path string) bool {
	return w.filter.SkipDir(w.rel(path))
}

func (w *Watcher) shouldExcludeFile(path string) bool {
	if !parser.IsSourceFile(path) {
		return true
	}
	return w.filter.SkipFile(w.rel(path))
}

func (w *Watcher) Close() error {
	w.pendingMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.pendingMu.Unlock()
	return w.fsWatcher.Close()
}

func (w *Watcher) enqueueExistingFiles(root string) {
	var found []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info == nil {
			return nil
		}
		if info.IsDir() {
			if path != root && w.shouldExcludeDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !w.shouldExcludeFile(path) {
			found = append(found, path)
		}
		return nil
	})
	sort.Strings(found)
	for _, path := range found {
		w.scheduleChange(path)
	}
}
