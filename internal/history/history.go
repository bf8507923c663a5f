// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records which threads have been posted so repeated runs
// over the same summaries do not post them twice.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one posted thread.
type Entry struct {
	Link     string
	Title    string
	PostIDs  []string
	PostedAt time.Time
}

// Store manages the posted-thread SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS posted (
		link TEXT PRIMARY KEY,
		title TEXT,
		post_ids TEXT,
		posted_at TEXT NOT NULL
	)`)
	return err
}

// Posted reports whether a thread for link has already been posted.
func (s *Store) Posted(ctx context.Context, link string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM posted WHERE link = ?`, link).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("querying posted %s: %w", link, err)
	}
	return n > 0, nil
}

// Record stores a posted thread. Recording the same link again replaces
// the earlier entry.
func (s *Store) Record(ctx context.Context, link, title string, postIDs []string) error {
	ids, err := json.Marshal(postIDs)
	if err != nil {
		return fmt.Errorf("encoding post ids: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO posted (link, title, post_ids, posted_at) VALUES (?, ?, ?, ?)`,
		link, title, string(ids), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", link, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT link, title, post_ids, posted_at FROM posted ORDER BY posted_at DESC, link LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			title    sql.NullString
			ids      sql.NullString
			postedAt string
		)
		if err := rows.Scan(&e.Link, &title, &ids, &postedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Title = title.String
		if ids.Valid && ids.String != "" {
			if err := json.Unmarshal([]byte(ids.String), &e.PostIDs); err != nil {
				return nil, fmt.Errorf("decoding post ids for %s: %w", e.Link, err)
			}
		}
		if e.PostedAt, err = time.Parse(time.RFC3339, postedAt); err != nil {
			return nil, fmt.Errorf("parsing posted_at for %s: %w", e.Link, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
