package cli

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	coreapp "swiftslice/internal/core/app"
	"swiftslice/internal/core/config"
	"swiftslice/internal/shared/observability"
)

// runtime is the per-command wiring: logger, effective config and service.
type runtime struct {
	cfg     *config.Config
	paths   config.ResolvedPaths
	service *coreapp.Service
	logger  *slog.Logger

	shutdownTracing observability.ShutdownFunc
}

func newRuntime(cmd *cobra.Command, opts *rootOptions) (*runtime, error) {
	logger := newLogger(cmd, opts.verbose)

	config.LoadEnvFile(opts.envFile, logger)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cfgPath := opts.configPath
	optional := false
	if cfgPath == "" {
		cfgPath = config.FindConfig(cwd)
		optional = true
	}

	cfg := config.Default()
	base := cwd
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath, optional)
		if err != nil {
			return nil, err
		}
		base = filepath.Dir(cfgPath)
		logger.Debug("loaded config", "path", cfgPath)
	}
	config.ApplyEnvOverrides(cfg, logger)
	paths := config.ResolvePaths(cfg, base)
	if opts.sources != "" {
		paths.SourcesDir = config.ResolveRelative(cwd, opts.sources)
	}
	cfg.Sources.Dir = paths.SourcesDir
	cfg.Parse.CacheFile = paths.CacheFile

	shutdown, err := observability.InitTracing(cmd.Context(), cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		logger.Warn("tracing disabled", "error", err)
		shutdown = func(context.Context) error { return nil }
	}

	svc, err := coreapp.New(cfg, logger)
	if err != nil {
		_ = shutdown(cmd.Context())
		return nil, err
	}
	return &runtime{cfg: cfg, paths: paths, service: svc, logger: logger, shutdownTracing: shutdown}, nil
}

func (r *runtime) Close(ctx context.Context) {
	if err := r.service.Close(); err != nil {
		r.logger.Warn("failed to close record store", "error", err)
	}
	if err := r.shutdownTracing(ctx); err != nil {
		r.logger.Warn("failed to flush traces", "error", err)
	}
}

// newLogger writes text logs to the command's error stream so stdout only
// carries generated source or JSON.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// request builds the core request for startFile and explicit seeds.
func (r *runtime) request(startFile string, seeds []string) coreapp.Request {
	return coreapp.Request{
		StartFile:  startFile,
		SourcesDir: r.paths.SourcesDir,
		Seeds:      seeds,
	}
}
