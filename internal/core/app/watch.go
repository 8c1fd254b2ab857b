package app

import (
	"context"

	"swiftslice/internal/core/watcher"
	"swiftslice/internal/shared/observability"
	"swiftslice/internal/shared/util"
)

// Watch resolves req once, then again after every debounced batch of
// source changes, until ctx is done. Each outcome is passed to onResult;
// failed runs do not stop the loop.
func (s *Service) Watch(ctx context.Context, req Request, onResult func(*Result, error)) error {
	dir := req.SourcesDir
	if dir == "" {
		dir = s.Config.Sources.Dir
	}

	run := func(ctx context.Context, changed []string) {
		if len(changed) > 0 {
			s.logger.Info("sources changed", "files", len(changed))
		}
		res, err := s.Resolve(ctx, req)
		if err != nil {
			observability.WatcherRunsTotal.WithLabelValues("error").Inc()
		} else {
			observability.WatcherRunsTotal.WithLabelValues("ok").Inc()
		}
		onResult(res, err)
	}

	w, err := watcher.NewWatcher(watcher.Options{
		Debounce: s.Config.Watch.Debounce,
		Filter:   s.filter,
		Limiter:  util.NewRunLimiter(s.Config.Watch.MaxRunsPerSecond),
		Logger:   s.logger,
	}, run)
	if err != nil {
		return err
	}
	defer w.Close()

	run(ctx, nil)
	if err := w.Watch(ctx, dir); err != nil {
		return err
	}
	s.logger.Info("watching sources", "path", dir)

	<-ctx.Done()
	return nil
}
