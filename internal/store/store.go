// Package store keeps an imported course catalog in SQLite so the service
// can start without the original CSV.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"course-recommender/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS courses (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	name            TEXT    NOT NULL,
	link            TEXT    NOT NULL DEFAULT '',
	raw_category    TEXT    NOT NULL DEFAULT '',
	level           TEXT    NOT NULL DEFAULT '',
	rating          REAL    NOT NULL DEFAULT 0,
	university_name TEXT    NOT NULL DEFAULT '',
	imported_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// DB is a SQLite-backed course catalog.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) the catalog at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", path, err)
	}
	// one connection: writes serialize and ":memory:" stays a single database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: exec %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: running migrations: %w", err)
	}
	return &DB{db: db}, nil
}

func (s *DB) Close() error { return s.db.Close() }

// ReplaceCourses swaps the whole catalog for courses in one transaction.
func (s *DB) ReplaceCourses(ctx context.Context, courses []domain.CourseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses"); err != nil {
		return fmt.Errorf("store: clear courses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (name, link, raw_category, level, rating, university_name)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range courses {
		if _, err := stmt.ExecContext(ctx, c.Name, c.Link, c.RawCategory, c.Level, c.Rating, c.UniversityName); err != nil {
			return fmt.Errorf("store: insert row %d (%q): %w", i, c.Name, err)
		}
	}
	return tx.Commit()
}

// ListCourses returns the catalog in import order.
func (s *DB) ListCourses(ctx context.Context) ([]domain.CourseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, link, raw_category, level, rating, university_name
		FROM courses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list courses: %w", err)
	}
	defer rows.Close()

	var out []domain.CourseRecord
	for rows.Next() {
		var c domain.CourseRecord
		if err := rows.Scan(&c.Name, &c.Link, &c.RawCategory, &c.Level, &c.Rating, &c.UniversityName); err != nil {
			return nil, fmt.Errorf("store: scan course: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate courses: %w", err)
	}
	return out, nil
}

func (s *DB) CountCourses(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM courses").Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count courses: %w", err)
	}
	return n, nil
}
