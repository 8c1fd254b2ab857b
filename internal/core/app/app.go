// Package app wires collection, indexing, resolution and rendering into
// the operations the CLI and watcher drive.
package app

import (
	"fmt"
	"log/slog"
	"strings"

	"swiftslice/internal/core/config"
	"swiftslice/internal/core/ports"
	"swiftslice/internal/data/records"
	"swiftslice/internal/engine/builtins"
	"swiftslice/internal/engine/parser"
	"swiftslice/internal/engine/resolver"
	"swiftslice/internal/shared/util"
)

// Dependencies lets callers replace the parsing side of the service.
// Zero fields fall back to the tree-sitter implementations.
type Dependencies struct {
	Collector ports.DeclarationCollector
	Snippets  ports.SnippetSource
	Registry  *builtins.Registry
	// Store persists records across runs. When nil and the config names a
	// cache file, the service opens and owns a SQLite store.
	Store  ports.RecordStore
	Logger *slog.Logger
}

type Service struct {
	Config *config.Config

	collector ports.DeclarationCollector
	snippets  ports.SnippetSource
	resolver  *resolver.Resolver
	filter    *util.PathFilter
	cache     *recordCache
	store     ports.RecordStore
	ownsStore bool
	logger    *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	return NewWithDependencies(cfg, Dependencies{Logger: logger})
}

func NewWithDependencies(cfg *config.Config, deps Dependencies) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	filter, err := util.NewPathFilter(cfg.Sources.ExcludeDirs, cfg.Sources.ExcludeFiles)
	if err != nil {
		return nil, fmt.Errorf("build source filter: %w", err)
	}

	if deps.Collector == nil || deps.Snippets == nil {
		p := parser.NewParser()
		if deps.Collector == nil {
			deps.Collector = parser.NewCollector(p, logger)
		}
		if deps.Snippets == nil {
			deps.Snippets = parser.NewSnippetExtractor(p)
		}
	}
	store, ownsStore := deps.Store, false
	if store == nil && strings.TrimSpace(cfg.Parse.CacheFile) != "" {
		opened, err := records.Open(cfg.Parse.CacheFile)
		if err != nil {
			return nil, fmt.Errorf("open record store: %w", err)
		}
		store, ownsStore = opened, true
	}
	cache, err := newRecordCache(cfg.Parse.CacheSize, store, logger)
	if err != nil {
		if ownsStore {
			_ = store.Close()
		}
		return nil, fmt.Errorf("build record cache: %w", err)
	}
	registry := deps.Registry
	if registry == nil {
		registry = builtins.New(cfg.Builtins.Extra)
	}

	return &Service{
		Config:    cfg,
		collector: deps.Collector,
		snippets:  deps.Snippets,
		resolver:  resolver.New(registry, logger),
		filter:    filter,
		cache:     cache,
		store:     store,
		ownsStore: ownsStore,
		logger:    logger,
	}, nil
}

// Close releases the record store when the service opened it.
func (s *Service) Close() error {
	if s.store == nil || !s.ownsStore {
		return nil
	}
	return s.store.Close()
}

// Registry returns the builtin names the service resolves against.
func (s *Service) Registry() *builtins.Registry {
	return s.resolver.Registry()
}
