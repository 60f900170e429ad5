// Package runstore provides SQLite-backed launch history.
package runstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/classifai/trainlaunch/internal/domain"
	_ "modernc.org/sqlite"
)

// Store provides SQLite-backed run persistence
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path
func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun inserts a new run record
func (s *Store) SaveRun(run *domain.Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, architecture, depth, model_dir, log_dir, command, status, started_at, finished_at, elapsed_ms, exit_code, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Architecture,
		run.Depth,
		run.ModelDir,
		run.LogDir,
		run.Command,
		string(run.Status),
		run.StartedAt,
		run.FinishedAt,
		run.ElapsedMS,
		run.ExitCode,
		run.ErrorMessage,
	)
	return err
}

// FinishRun records the terminal state of a run
func (s *Store) FinishRun(id string, status domain.RunStatus, finishedAt time.Time, elapsedMS int64, exitCode int, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE runs
		SET status = ?, finished_at = ?, elapsed_ms = ?, exit_code = ?, error_message = ?
		WHERE id = ?
	`, string(status), finishedAt, elapsedMS, exitCode, errorMessage, id)
	return err
}

// GetRun retrieves a run by ID
func (s *Store) GetRun(id string) (*domain.Run, error) {
	row := s.db.QueryRow(`
		SELECT id, architecture, depth, model_dir, log_dir, command, status, started_at, finished_at, elapsed_ms, exit_code, error_message
		FROM runs WHERE id = ?
	`, id)
	return scanRun(row)
}

// ListRuns returns the most recent runs, newest first
func (s *Store) ListRuns(limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, architecture, depth, model_dir, log_dir, command, status, started_at, finished_at, elapsed_ms, exit_code, error_message
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.Run, error) {
	var run domain.Run
	var status string
	var finishedAt sql.NullTime
	err := row.Scan(
		&run.ID,
		&run.Architecture,
		&run.Depth,
		&run.ModelDir,
		&run.LogDir,
		&run.Command,
		&status,
		&run.StartedAt,
		&finishedAt,
		&run.ElapsedMS,
		&run.ExitCode,
		&run.ErrorMessage,
	)
	if err != nil {
		return nil, err
	}
	run.Status = domain.RunStatus(status)
	if finishedAt.Valid {
		t := finishedAt.Time
		run.FinishedAt = &t
	}
	return &run, nil
}
