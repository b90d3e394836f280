// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of per-file pipeline outcomes so
// published pages can be traced back to their source files.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scriptdoc/pkg/types"
)

// Entry is one recorded file outcome.
type Entry struct {
	RunID       string        `json:"run_id" yaml:"run_id"`
	File        string        `json:"file" yaml:"file"`
	SourcePath  string        `json:"source_path" yaml:"source_path"`
	Outcome     types.Outcome `json:"outcome" yaml:"outcome"`
	PageID      string        `json:"page_id,omitempty" yaml:"page_id,omitempty"`
	PageTitle   string        `json:"page_title,omitempty" yaml:"page_title,omitempty"`
	PageURL     string        `json:"page_url,omitempty" yaml:"page_url,omitempty"`
	ArchivePath string        `json:"archive_path,omitempty" yaml:"archive_path,omitempty"`
	Error       string        `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt  time.Time     `json:"recorded_at" yaml:"recorded_at"`
}

// Store manages the ledger database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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
	statements := []string{
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			file TEXT NOT NULL,
			source_path TEXT NOT NULL,
			outcome TEXT NOT NULL,
			page_id TEXT,
			page_title TEXT,
			page_url TEXT,
			archive_path TEXT,
			error TEXT,
			recorded_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_file ON results(file)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of one file for runID.
func (s *Store) Record(ctx context.Context, runID string, r types.FileResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (run_id, file, source_path, outcome, page_id, page_title, page_url, archive_path, error, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.File.Name, r.File.Path, string(r.Outcome),
		r.PageID, r.PageTitle, r.PageURL, r.ArchivePath, r.ErrMessage(),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", r.File.Name, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A limit of zero or
// less returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT run_id, file, source_path, outcome, page_id, page_title, page_url, archive_path, error, recorded_at
		FROM results ORDER BY id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                                                Entry
			outcome, recordedAt                              string
			pageID, pageTitle, pageURL, archivePath, errText sql.NullString
		)
		if err := rows.Scan(&e.RunID, &e.File, &e.SourcePath, &outcome,
			&pageID, &pageTitle, &pageURL, &archivePath, &errText, &recordedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.Outcome = types.Outcome(outcome)
		e.PageID = pageID.String
		e.PageTitle = pageTitle.String
		e.PageURL = pageURL.String
		e.ArchivePath = archivePath.String
		e.Error = errText.String
		if t, err := time.Parse(time.RFC3339Nano, recordedAt); err == nil {
			e.RecordedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ExportYAML writes entries to w as a YAML list.
func ExportYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding ledger YAML: %w", err)
	}
	return enc.Close()
}
