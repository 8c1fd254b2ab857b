// Package records persists collected file records in SQLite so separate
// invocations can skip files that have not changed on disk.
package records

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"swiftslice/internal/engine/parser"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
)

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("record store path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("record store path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create record store directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open record store %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping record store %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize record store schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Load returns the record saved for path when it was saved for the same
// size and modification time. A stale or missing row is a miss, not an error.
func (s *Store) Load(path string, size int64, modTime time.Time) (*parser.FileRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		storedSize    int64
		storedModTime int64
		version       int
		payload       []byte
	)
	err := s.withRetry("load record", func() error {
		return s.db.QueryRow(
			`SELECT size, mod_time_ns, payload_version, payload FROM records WHERE path = ?`,
			path,
		).Scan(&storedSize, &storedModTime, &version, &payload)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if storedSize != size || storedModTime != modTime.UnixNano() || version != PayloadVersion {
		return nil, false, nil
	}

	var rec parser.FileRecord
	if err := msgpack.Unmarshal(payload, &rec); err != nil {
		return nil, false, fmt.Errorf("decode record %q: %w", path, err)
	}
	rec.Path = path
	for _, decl := range rec.Declarations {
		decl.File = path
	}
	return &rec, true, nil
}

func (s *Store) Save(rec *parser.FileRecord, size int64, modTime time.Time) error {
	payload, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %q: %w", rec.Path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
INSERT INTO records (path, size, mod_time_ns, payload_version, payload, updated_at_utc)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
  size=excluded.size,
  mod_time_ns=excluded.mod_time_ns,
  payload_version=excluded.payload_version,
  payload=excluded.payload,
  updated_at_utc=excluded.updated_at_utc
`
	return s.withRetry("save record", func() error {
		_, err := s.db.Exec(query, rec.Path, size, modTime.UnixNano(), PayloadVersion, payload, time.Now().UTC().Format(time.RFC3339Nano))
		return err
	})
}

// Prune removes rows for paths that keep rejects and reports how many went.
func (s *Store) Prune(keep func(path string) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paths []string
	err := s.withRetry("list records", func() error {
		rows, err := s.db.Query(`SELECT path FROM records ORDER BY path`)
		if err != nil {
			return err
		}
		defer rows.Close()
		paths = paths[:0]
		for rows.Next() {
			var p string
			if err := rows.Scan(&p); err != nil {
				return err
			}
			paths = append(paths, p)
		}
		return rows.Err()
	})
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, p := range paths {
		if keep(p) {
			continue
		}
		if err := s.withRetry("prune record", func() error {
			_, err := s.db.Exec(`DELETE FROM records WHERE path = ?`, p)
			return err
		}); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Store) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.withRetry("count records", func() error {
		return s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n)
	})
	return n, err
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

// IsCorruptError reports whether err means the database file is unusable
// and should be recreated.
func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
