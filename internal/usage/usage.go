/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package usage persists per-user toolbar command usage in an embedded
// SQLite database. The counts feed the "recently used" toolbar group
// and never leave the machine.
package usage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "inkbar/internal/log"
	"inkbar/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	DataFileName = "usage.sqlite"

	// schemaVersion tracks the local SQLite schema. Bump it when you
	// perform breaking schema changes and add migrations.
	schemaVersion = 1
)

// ItemStat is one command's usage record.
type ItemStat struct {
	Command  string
	Count    int64
	LastUsed time.Time
}

// Store is a handle to the usage database. Safe for use from the UI
// goroutine; the connection pool is capped at one for embedded use.
type Store struct {
	db  *sql.DB
	dir string
}

// Path returns the full path to the usage database inside dir.
func Path(dir string) string {
	return filepath.Join(dir, DataFileName)
}

// Open ensures the usage database exists under dir, opens it, enables
// WAL mode and brings the schema up to date.
func Open(dir string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("usage"), "open").With(
		slog.String("dir", dir),
	)
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("usage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		l.Error("create usage dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create usage dir: %w", err)
	}

	path := Path(dir)
	// URI with shared cache and busy timeout; forward slashes for SQLite.
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure schema failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("usage store ready", slog.String("path", path))
	return &Store{db: db, dir: dir}, nil
}

// Dir returns the directory the store was opened under.
func (s *Store) Dir() string { return s.dir }

// Close releases the database handle. Safe to call on a nil store.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record bumps the usage count for a command and stamps the time.
func (s *Store) Record(command string) error {
	if s == nil || strings.TrimSpace(command) == "" {
		return errors.New("command is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO command_usage (command, count, last_used) VALUES (?, 1, ?)
		 ON CONFLICT(command) DO UPDATE SET count = count + 1, last_used = excluded.last_used`,
		command, time.Now().UTC().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Top returns the n most-used commands, most recent first on equal
// counts. n <= 0 returns an empty slice.
func (s *Store) Top(n int) ([]ItemStat, error) {
	if s == nil || n <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT command, count, last_used FROM command_usage
		 ORDER BY count DESC, last_used DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query top usage: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanStats(rows)
}

// Recent returns the n most recently used commands.
func (s *Store) Recent(n int) ([]ItemStat, error) {
	if s == nil || n <= 0 {
		return nil, nil
	}
	rows, err := s.db.Query(
		`SELECT command, count, last_used FROM command_usage
		 ORDER BY last_used DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent usage: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanStats(rows)
}

func scanStats(rows *sql.Rows) ([]ItemStat, error) {
	var out []ItemStat
	for rows.Next() {
		var it ItemStat
		var ts int64
		if err := rows.Scan(&it.Command, &it.Count, &ts); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		it.LastUsed = time.Unix(ts, 0).UTC()
		out = append(out, it)
	}
	return out, rows.Err()
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS command_usage (
			command    TEXT PRIMARY KEY,
			count      INTEGER NOT NULL DEFAULT 0,
			last_used  INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_command_usage_last ON command_usage(last_used);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var cur int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Keep the stored schema for future migrations; refresh metadata.
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}
