// Package history keeps a SQLite record of finished builds per project.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/nativedev/internal/core/domain"
	"go.trai.ch/nativedev/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// DefaultRecentLimit is used when Recent is called without a positive limit.
const DefaultRecentLimit = 20

var _ ports.BuildHistory = (*Store)(nil)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
CREATE TABLE IF NOT EXISTS builds (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	platform    TEXT    NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	error       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_builds_started_at ON builds(started_at);
`

// Store implements ports.BuildHistory on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryOpenFailed.Error()), "path", path)
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryOpenFailed.Error()), "path", path)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryOpenFailed.Error()), "pragma", p)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryOpenFailed.Error()), "path", path)
	}

	return &Store{db: db}, nil
}

// Record stores a finished build and returns its id.
func (s *Store) Record(ctx context.Context, rec domain.BuildRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO builds (platform, started_at, finished_at, error) VALUES (?, ?, ?, ?)`,
		rec.Platform.String(), rec.StartedAt.UnixNano(), rec.FinishedAt.UnixNano(), rec.Error,
	)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error()), "platform", rec.Platform.String())
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrHistoryWriteFailed.Error())
	}
	return id, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, platform, started_at, finished_at, error
		 FROM builds ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var records []domain.BuildRecord
	for rows.Next() {
		var (
			rec               domain.BuildRecord
			platform          string
			started, finished int64
		)
		if err := rows.Scan(&rec.ID, &platform, &started, &finished, &rec.Error); err != nil {
			return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
		}
		p, err := domain.ParsePlatform(platform)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrHistoryReadFailed.Error()), "id", rec.ID)
		}
		rec.Platform = p
		rec.StartedAt = time.Unix(0, started)
		rec.FinishedAt = time.Unix(0, finished)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrHistoryReadFailed.Error())
	}
	return records, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
