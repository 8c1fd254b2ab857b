package records

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the newest migration this package knows.
const SchemaVersion = 2

// PayloadVersion tags encoded records. Rows written with another value are
// treated as misses and overwritten on the next save.
const PayloadVersion = 1

var migrations = []string{
	1: `
CREATE TABLE IF NOT EXISTS records (
  path TEXT PRIMARY KEY,
  size INTEGER NOT NULL,
  mod_time_ns INTEGER NOT NULL,
  payload_version INTEGER NOT NULL,
  payload BLOB NOT NULL
);
`,
	2: `
ALTER TABLE records ADD COLUMN updated_at_utc TEXT NOT NULL DEFAULT '';
CREATE INDEX IF NOT EXISTS idx_records_updated ON records(updated_at_utc);
`,
}

// EnsureSchema brings db up to SchemaVersion, one transaction per step.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if current > SchemaVersion {
		return fmt.Errorf("record store schema version %d is newer than supported version %d", current, SchemaVersion)
	}

	for version := current + 1; version <= SchemaVersion; version++ {
		if err := migrate(db, version); err != nil {
			return err
		}
	}
	return nil
}

func migrate(db *sql.DB, version int) (err error) {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(migrations[version]); err != nil {
		return fmt.Errorf("apply migration %d: %w", version, err)
	}
	if _, err = tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?)`, version); err != nil {
		return fmt.Errorf("record migration %d: %w", version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %d: %w", version, err)
	}
	return nil
}
