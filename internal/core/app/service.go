package app

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"swiftslice/internal/core/errors"
	"swiftslice/internal/engine/graph"
	"swiftslice/internal/engine/parser"
	"swiftslice/internal/engine/resolver"
	"swiftslice/internal/engine/synth"
	"swiftslice/internal/shared/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Request names the file to slice for and the extra type names to anchor.
type Request struct {
	StartFile string
	// SourcesDir defaults to the configured sources directory.
	SourcesDir string
	Seeds      []string
}

type Result struct {
	GeneratedSource      string
	ResolvedImports      []string
	ContributingFiles    []string
	TotalDeclarations    int
	ResolvedDeclarations int
	Declarations         []*parser.Declaration
	// Unresolved lists referenced names nothing in the sources declares.
	Unresolved []resolver.UnresolvedReference
	// Skipped lists source files that could not be read.
	Skipped []string
}

type FileResult struct {
	Files    []string `json:"files"`
	Excluded []string `json:"excluded"`
	Skipped  []string `json:"skipped,omitempty"`
}

// Collection is the indexed snapshot of a sources tree.
type Collection struct {
	StartFile string
	Index     *graph.Index
	Skipped   []string
}

// Resolve collects the sources, computes the declaration-level slice for
// the start file and seeds, and renders it. Nothing is returned when the
// start file cannot be read.
func (s *Service) Resolve(ctx context.Context, req Request) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "Service.Resolve", trace.WithAttributes(
		attribute.String("start_file", req.StartFile),
		attribute.Int("seeds", len(req.Seeds)),
	))
	defer span.End()

	col, err := s.Collect(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	set := s.resolver.Resolve(col.Index, col.StartFile, req.Seeds)
	observability.ResolveDuration.WithLabelValues("resolve").Observe(time.Since(start).Seconds())
	observability.ResolvedDeclarations.Set(float64(set.ResolvedDeclarations))
	observability.RescuedDeclarations.Add(float64(set.Rescued))

	start = time.Now()
	source := synth.RenderWith(set, synth.Options{OmitHeader: !s.Config.Output.Header})
	observability.ResolveDuration.WithLabelValues("render").Observe(time.Since(start).Seconds())

	span.SetAttributes(
		attribute.Int("declarations.total", set.TotalDeclarations),
		attribute.Int("declarations.resolved", set.ResolvedDeclarations),
	)
	s.logger.Info("resolved slice",
		"path", col.StartFile,
		"files", len(set.ContributingFiles),
		"declarations", set.TotalDeclarations,
		"resolved", set.ResolvedDeclarations,
	)

	return &Result{
		GeneratedSource:      source,
		ResolvedImports:      set.ResolvedImports,
		ContributingFiles:    set.ContributingFiles,
		TotalDeclarations:    set.TotalDeclarations,
		ResolvedDeclarations: set.ResolvedDeclarations,
		Declarations:         set.Declarations,
		Unresolved:           s.resolver.Unresolved(col.Index, set),
		Skipped:              col.Skipped,
	}, nil
}

// ResolveFiles is the whole-file variant of Resolve.
func (s *Service) ResolveFiles(ctx context.Context, req Request) (*FileResult, error) {
	ctx, span := observability.Tracer.Start(ctx, "Service.ResolveFiles")
	defer span.End()

	col, err := s.Collect(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	set := s.resolver.ResolveFiles(col.Index, col.StartFile, req.Seeds)
	observability.ResolveDuration.WithLabelValues("resolve_files").Observe(time.Since(start).Seconds())

	s.logger.Info("resolved file slice", "path", col.StartFile, "files", len(set.Files), "excluded", len(set.Excluded))
	return &FileResult{Files: set.Files, Excluded: set.Excluded, Skipped: col.Skipped}, nil
}

// SeedsFromSnippet extracts the preview snippet of path and the
// non-builtin capitalized identifiers it mentions.
func (s *Service) SeedsFromSnippet(ctx context.Context, path string) (string, []string, error) {
	body, err := s.snippets.ExtractSnippet(ctx, path)
	if err != nil {
		return "", nil, err
	}

	var seeds []string
	for _, name := range parser.ScanIdentifiers(body) {
		if !s.Registry().Contains(name) {
			seeds = append(seeds, name)
		}
	}
	s.logger.Debug("snippet seeds", "path", path, "seeds", seeds)
	return body, seeds, nil
}

// SnippetImports returns the modules imported by the file holding a
// snippet, which the snippet body is written against.
func (s *Service) SnippetImports(ctx context.Context, path string) ([]string, error) {
	return s.snippets.ExtractImports(ctx, path)
}

// Collect scans the sources, collects every file in parallel and indexes
// the result. Discovery indexes follow sorted path order, so repeated runs
// over an unchanged tree number declarations identically.
func (s *Service) Collect(ctx context.Context, req Request) (*Collection, error) {
	ctx, span := observability.Tracer.Start(ctx, "Service.Collect")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	startFile, err := filepath.Abs(req.StartFile)
	if err != nil {
		return nil, errors.WithPath(err, errors.CodeStartFileUnreadable, "start file unreadable", req.StartFile)
	}
	dir := req.SourcesDir
	if dir == "" {
		dir = s.Config.Sources.Dir
	}

	start := time.Now()
	files, err := s.ScanSources(dir)
	if err != nil {
		return nil, errors.WithPath(err, errors.CodeInternal, "scan sources", dir)
	}
	files = withFile(files, startFile)
	observability.ResolveDuration.WithLabelValues("scan").Observe(time.Since(start).Seconds())

	start = time.Now()
	records, skipped, err := s.collectAll(ctx, files, startFile)
	if err != nil {
		return nil, err
	}
	observability.ResolveDuration.WithLabelValues("collect").Observe(time.Since(start).Seconds())

	parser.NumberDeclarations(records)
	span.SetAttributes(attribute.Int("files", len(records)))
	return &Collection{StartFile: startFile, Index: graph.NewIndex(records), Skipped: skipped}, nil
}

func (s *Service) collectAll(ctx context.Context, files []string, startFile string) ([]*parser.FileRecord, []string, error) {
	slots := make([]*parser.FileRecord, len(files))
	failed := make([]bool, len(files))

	workers := s.Config.Parse.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info, statErr := os.Stat(path)
			if statErr == nil {
				if rec, ok := s.cache.Get(path, info); ok {
					slots[i] = rec
					return nil
				}
			}
			rec, err := s.collector.CollectFile(gctx, path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if path == startFile {
					return errors.WithPath(err, errors.CodeStartFileUnreadable, "start file unreadable", path)
				}
				observability.ParseFailuresTotal.Inc()
				s.logger.Warn("skipping unreadable source file", "path", path, "error", err)
				failed[i] = true
				return nil
			}
			if statErr == nil {
				s.cache.Put(path, info, rec)
			}
			slots[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	records := make([]*parser.FileRecord, 0, len(files))
	var skipped []string
	for i, rec := range slots {
		if failed[i] {
			skipped = append(skipped, files[i])
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// withFile returns sorted files with path added when missing.
func withFile(files []string, path string) []string {
	i := sort.SearchStrings(files, path)
	if i < len(files) && files[i] == path {
		return files
	}
	files = append(files, "")
	copy(files[i+1:], files[i:])
	files[i] = path
	return files
}
