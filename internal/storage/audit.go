// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local action history database. Every
// operator action that hits the remote service (logins, blocks, role
// changes, registrations) gets a row here so the History screen can
// show what this machine has done, even across restarts.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ACTIONS
// =============================================================================

// Action identifies what kind of operator action an entry records.
type Action string

const (
	ActionLogin      Action = "login"
	ActionLogout     Action = "logout"
	ActionBlock      Action = "block"
	ActionUnblock    Action = "unblock"
	ActionRoleChange Action = "role_change"
	ActionRegister   Action = "register"
)

// Entry is one recorded operator action.
type Entry struct {
	ID        int64
	Action    Action
	Subject   string // user ID or email the action targeted, if any
	Detail    string // free-form outcome detail
	Succeeded bool
	CreatedAt time.Time
}

// =============================================================================
// AUDIT LOG
// =============================================================================

var ErrClosed = errors.New("audit log is closed")

// AuditLog is an append-mostly SQLite store of operator actions.
type AuditLog struct {
	db         *sql.DB
	maxEntries int
}

const schema = `
CREATE TABLE IF NOT EXISTS actions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    action     TEXT NOT NULL,
    subject    TEXT NOT NULL DEFAULT '',
    detail     TEXT NOT NULL DEFAULT '',
    succeeded  INTEGER NOT NULL DEFAULT 1,
    created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_actions_created ON actions(created_at DESC);
`

// OpenAuditLog opens (creating if needed) the history database at
// path. maxEntries bounds retained rows; older rows are pruned as new
// ones arrive. maxEntries <= 0 disables pruning.
func OpenAuditLog(path string, maxEntries int) (*AuditLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &AuditLog{db: db, maxEntries: maxEntries}, nil
}

// Close closes the underlying database.
func (l *AuditLog) Close() error {
	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}

// Record appends one action. Recording is best effort from the UI's
// point of view; callers surface the error but never fail the action
// itself over it.
func (l *AuditLog) Record(action Action, subject, detail string, succeeded bool) error {
	if l.db == nil {
		return ErrClosed
	}

	_, err := l.db.Exec(
		"INSERT INTO actions (action, subject, detail, succeeded, created_at) VALUES (?, ?, ?, ?, ?)",
		string(action), subject, detail, boolToInt(succeeded), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record action: %w", err)
	}

	if l.maxEntries > 0 {
		_, err = l.db.Exec(
			"DELETE FROM actions WHERE id NOT IN (SELECT id FROM actions ORDER BY id DESC LIMIT ?)",
			l.maxEntries,
		)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (l *AuditLog) Recent(limit int) ([]Entry, error) {
	if l.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.Query(
		"SELECT id, action, subject, detail, succeeded, created_at FROM actions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var action string
		var succeeded, created int64
		if err := rows.Scan(&e.ID, &action, &e.Subject, &e.Detail, &succeeded, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Action = Action(action)
		e.Succeeded = succeeded != 0
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of stored entries.
func (l *AuditLog) Count() (int, error) {
	if l.db == nil {
		return 0, ErrClosed
	}
	var n int
	err := l.db.QueryRow("SELECT COUNT(*) FROM actions").Scan(&n)
	return n, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
