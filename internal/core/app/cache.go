package app

import (
	"log/slog"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"swiftslice/internal/core/ports"
	"swiftslice/internal/engine/parser"
	"swiftslice/internal/shared/observability"
)

type cachedRecord struct {
	modTime time.Time
	size    int64
	record  *parser.FileRecord
}

// recordCache keeps collected files keyed by path and reuses them while
// the file's size and modification time are unchanged. Memory misses fall
// through to the optional persistent store.
type recordCache struct {
	entries *lru.Cache[string, cachedRecord]
	store   ports.RecordStore
	logger  *slog.Logger
}

func newRecordCache(size int, store ports.RecordStore, logger *slog.Logger) (*recordCache, error) {
	entries, err := lru.New[string, cachedRecord](size)
	if err != nil {
		return nil, err
	}
	return &recordCache{entries: entries, store: store, logger: logger}, nil
}

// Get returns a copy of the cached record for path. Copies keep discovery
// indexes of one run from leaking into another.
func (c *recordCache) Get(path string, info os.FileInfo) (*parser.FileRecord, bool) {
	if entry, ok := c.entries.Get(path); ok && entry.size == info.Size() && entry.modTime.Equal(info.ModTime()) {
		observability.RecordCacheLookups.WithLabelValues("memory").Inc()
		return cloneRecord(entry.record), true
	}
	if c.store != nil {
		rec, ok, err := c.store.Load(path, info.Size(), info.ModTime())
		if err != nil {
			c.logger.Warn("record store load failed", "path", path, "error", err)
		} else if ok {
			observability.RecordCacheLookups.WithLabelValues("store").Inc()
			c.entries.Add(path, cachedRecord{modTime: info.ModTime(), size: info.Size(), record: cloneRecord(rec)})
			return rec, true
		}
	}
	observability.RecordCacheLookups.WithLabelValues("miss").Inc()
	return nil, false
}

func (c *recordCache) Put(path string, info os.FileInfo, rec *parser.FileRecord) {
	c.entries.Add(path, cachedRecord{modTime: info.ModTime(), size: info.Size(), record: cloneRecord(rec)})
	if c.store == nil {
		return
	}
	if err := c.store.Save(rec, info.Size(), info.ModTime()); err != nil {
		c.logger.Warn("record store save failed", "path", path, "error", err)
	}
}

func (c *recordCache) Len() int {
	return c.entries.Len()
}

func cloneRecord(rec *parser.FileRecord) *parser.FileRecord {
	out := &parser.FileRecord{
		Path:         rec.Path,
		Imports:      rec.Imports,
		Declarations: make([]*parser.Declaration, len(rec.Declarations)),
	}
	for i, decl := range rec.Declarations {
		d := *decl
		out.Declarations[i] = &d
	}
	return out
}

// CacheStats reports how many records each cache layer holds.
type CacheStats struct {
	Memory    int  `json:"memory"`
	Persisted int  `json:"persisted"`
	Store     bool `json:"store"`
}

func (s *Service) CacheStats() (CacheStats, error) {
	stats := CacheStats{Memory: s.cache.Len(), Store: s.store != nil}
	if s.store == nil {
		return stats, nil
	}
	n, err := s.store.Count()
	if err != nil {
		return stats, err
	}
	stats.Persisted = n
	return stats, nil
}

// PruneCache drops persisted records whose files no longer exist.
func (s *Service) PruneCache() (int, error) {
	if s.store == nil {
		return 0, nil
	}
	removed, err := s.store.Prune(func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	})
	if err != nil {
		return removed, err
	}
	s.logger.Info("pruned record store", "removed", removed)
	return removed, nil
}
