// Package database persists the run ledger: one row per completed
// archival run, so the scheduler can skip a month that was already
// archived and delivered.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"slack-archiver/models"
)

// Ledger records completed archival runs in a SQLite database.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if necessary) the ledger database at dbPath.
func Open(dbPath string) (*Ledger, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger at %s: %w", dbPath, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}

	if err := createRunsTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	log.Println("Run ledger opened at", dbPath)
	return &Ledger{db: db}, nil
}

func createRunsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS archive_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        workspace TEXT NOT NULL,
        month TEXT NOT NULL,
        channels INTEGER NOT NULL,
        records INTEGER NOT NULL,
        table_path TEXT DEFAULT '',
        bundle_path TEXT DEFAULT '',
        delivered INTEGER NOT NULL DEFAULT 0,
        completed_at INTEGER NOT NULL
    );`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to execute table creation query: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_workspace_month ON archive_runs(workspace, month);",
		"CREATE INDEX IF NOT EXISTS idx_completed_at ON archive_runs(completed_at);",
	}
	for _, indexQuery := range indexes {
		if _, err := db.Exec(indexQuery); err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}
	return nil
}

// RecordRun appends one completed run to the ledger.
func (l *Ledger) RecordRun(run models.RunRecord) error {
	if run.CompletedAt == 0 {
		run.CompletedAt = time.Now().Unix()
	}
	delivered := 0
	if run.Delivered {
		delivered = 1
	}
	_, err := l.db.Exec(`
        INSERT INTO archive_runs (workspace, month, channels, records, table_path, bundle_path, delivered, completed_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Workspace, run.Month, run.Channels, run.Records,
		run.TablePath, run.BundlePath, delivered, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to record run for %s: %w", run.Month, err)
	}
	return nil
}

// Delivered reports whether any run for the month has already been
// delivered, for any workspace recorded in this ledger.
func (l *Ledger) Delivered(month string) (bool, error) {
	var count int
	err := l.db.QueryRow(
		"SELECT COUNT(*) FROM archive_runs WHERE month = ? AND delivered = 1", month,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query ledger for %s: %w", month, err)
	}
	return count > 0, nil
}

// LastRun returns the most recent run recorded for the month, or nil
// if the month has never been archived.
func (l *Ledger) LastRun(month string) (*models.RunRecord, error) {
	row := l.db.QueryRow(`
        SELECT id, workspace, month, channels, records, table_path, bundle_path, delivered, completed_at
        FROM archive_runs WHERE month = ? ORDER BY completed_at DESC LIMIT 1`, month)

	var run models.RunRecord
	var delivered int
	err := row.Scan(&run.ID, &run.Workspace, &run.Month, &run.Channels, &run.Records,
		&run.TablePath, &run.BundlePath, &delivered, &run.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last run for %s: %w", month, err)
	}
	run.Delivered = delivered == 1
	return &run, nil
}

// Close closes the ledger database.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}
