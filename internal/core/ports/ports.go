package ports

import (
	"context"
	"time"

	"swiftslice/internal/data/records"
	"swiftslice/internal/engine/parser"
)

// DeclarationCollector abstracts turning one source file into its ordered
// top-level declarations.
type DeclarationCollector interface {
	CollectFile(ctx context.Context, path string) (*parser.FileRecord, error)
}

// SnippetSource abstracts locating the preview snippet of a file.
type SnippetSource interface {
	ExtractSnippet(ctx context.Context, path string) (string, error)
	ExtractImports(ctx context.Context, path string) ([]string, error)
}

// RecordStore persists collected records across invocations, keyed by
// path and validated by size and modification time.
type RecordStore interface {
	Load(path string, size int64, modTime time.Time) (*parser.FileRecord, bool, error)
	Save(rec *parser.FileRecord, size int64, modTime time.Time) error
	Prune(keep func(path string) bool) (int, error)
	Count() (int, error)
	Close() error
}

var (
	_ DeclarationCollector = (*parser.Collector)(nil)
	_ SnippetSource        = (*parser.SnippetExtractor)(nil)
	_ RecordStore          = (*records.Store)(nil)
)
