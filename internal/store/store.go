// Package store is the SQLite data access layer: one file, symbols,
// dependency edges, git stats, decisions, and knowledge notes, plus the
// symbols_fts full-text index kept current by triggers.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ctxagent/ctx/internal/ctxerr"
)

// Store wraps a single SQLite connection pool for one project's database
// (store.db in the project data directory when opened by the engine).
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at dbPath with WAL
// journaling, foreign keys enforced, and a 30s busy timeout so concurrent
// readers don't trip over the writer lock.
func Open(dbPath string) (*Store, error) {
	dsn := dbPath + "?_journal_mode=WAL&_foreign_keys=ON&_synchronous=NORMAL&_busy_timeout=30000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, ctxerr.WrapPath(ctxerr.KindIO, "open database", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ctxerr.WrapPath(ctxerr.KindIO, "ping database", dbPath, err)
	}
	// SQLite only allows one writer at a time regardless of pool size; a
	// single connection avoids "database is locked" errors surfacing as
	// spurious Busy failures from within one process.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for callers that need a transaction.
func (s *Store) DB() *sql.DB {
	return s.db
}

// InitSchema applies every migration the stored schema_version hasn't
// seen yet, inside a single transaction per migration. If the database
// already carries a newer version than this binary knows about, it
// returns a KindSchema error rather than touching anything.
func (s *Store) InitSchema() error {
	current, err := s.currentVersion()
	if err != nil {
		return err
	}
	if current > schemaVersion {
		return ctxerr.New(ctxerr.KindSchema, fmt.Sprintf("database schema version %d is ahead of binary version %d", current, schemaVersion))
	}
	for i := current; i < schemaVersion; i++ {
		tx, err := s.db.Begin()
		if err != nil {
			return ctxerr.Wrap(ctxerr.KindSchema, "begin migration", err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return ctxerr.Wrap(ctxerr.KindSchema, fmt.Sprintf("apply migration %d", i+1), err)
		}
		if _, err := tx.Exec(`UPDATE meta SET schema_version = ? WHERE id = 1`, i+1); err != nil {
			tx.Rollback()
			return ctxerr.Wrap(ctxerr.KindSchema, fmt.Sprintf("record migration %d", i+1), err)
		}
		if err := tx.Commit(); err != nil {
			return ctxerr.Wrap(ctxerr.KindSchema, fmt.Sprintf("commit migration %d", i+1), err)
		}
	}
	return nil
}

// currentVersion reads schema_version, treating "no meta table yet" as 0.
func (s *Store) currentVersion() (int, error) {
	var version int
	err := s.db.QueryRow(`SELECT schema_version FROM meta WHERE id = 1`).Scan(&version)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		// meta itself may not exist yet on a brand-new file.
		return 0, nil
	}
	return version, nil
}
