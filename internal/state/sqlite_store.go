package state

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// SQLiteStore implements SQLite-based run history.
type SQLiteStore struct {
	db     *sql.DB
	logger *events.Logger

	mu sync.Mutex
}

// NewSQLiteStore creates a SQLite history store.
func NewSQLiteStore(dbPath string, logger *events.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		logger: logger.WithField("component", "sqlite_history_store"),
	}

	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize database: %w", err)
	}

	return store, nil
}

// initialize creates tables and indexes.
func (s *SQLiteStore) initialize() error {
	schema := `
    CREATE TABLE IF NOT EXISTS runs (
        seq INTEGER PRIMARY KEY AUTOINCREMENT,
        id TEXT NOT NULL UNIQUE,
        started_at TIMESTAMP NOT NULL,
        duration_ns INTEGER NOT NULL,
        passed INTEGER NOT NULL,
        broken_alg TEXT NOT NULL DEFAULT ''
    );

    CREATE TABLE IF NOT EXISTS run_results (
        run_id TEXT NOT NULL,
        position INTEGER NOT NULL,
        alg TEXT NOT NULL,
        kind TEXT NOT NULL,
        status TEXT NOT NULL,
        op TEXT NOT NULL DEFAULT '',
        error_kind TEXT NOT NULL DEFAULT '',
        error TEXT NOT NULL DEFAULT '',
        duration_ns INTEGER NOT NULL,
        PRIMARY KEY (run_id, position),
        FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
    );

    CREATE TABLE IF NOT EXISTS schema_info (
        version INTEGER PRIMARY KEY
    );

    INSERT OR IGNORE INTO schema_info (version) VALUES (?);
    `

	if _, err := s.db.Exec(schema, CurrentSchemaVersion); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	// Enable foreign keys
	if _, err := s.db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	return nil
}

// Append stores a run and its results in one transaction.
func (s *SQLiteStore) Append(report *models.RunReport) error {
	if err := checkReport(report); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":  report.ID,
		"passed":  report.Passed,
		"results": len(report.Results),
	}).Debug("Saving run to SQLite")

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRow("SELECT COUNT(1) FROM runs WHERE id = ?", report.ID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query run: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%s: %w", report.ID, ErrRunExists)
	}

	_, err = tx.Exec(`
        INSERT INTO runs (id, started_at, duration_ns, passed, broken_alg)
        VALUES (?, ?, ?, ?, ?)
    `, report.ID, report.StartedAt.UTC(), int64(report.Duration), report.Passed, report.BrokenAlg)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return fmt.Errorf("%s: %w", report.ID, ErrRunExists)
		}
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
        INSERT INTO run_results (run_id, position, alg, kind, status, op, error_kind, error, duration_ns)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, res := range report.Results {
		_, err := stmt.Exec(report.ID, i, res.Alg, res.Kind, string(res.Status),
			res.Op, string(res.ErrorKind), res.Error, int64(res.Duration))
		if err != nil {
			return fmt.Errorf("insert result %s: %w", res.Alg, err)
		}
	}

	return tx.Commit()
}

// Get retrieves a run by ID.
func (s *SQLiteStore) Get(id string) (*models.RunReport, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRow(`
        SELECT id, started_at, duration_ns, passed, broken_alg
        FROM runs
        WHERE id = ?
    `, id)

	report, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	if err := loadResults(tx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// List returns runs newest first.
func (s *SQLiteStore) List(limit int) ([]*models.RunReport, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var query strings.Builder
	query.WriteString(`
        SELECT id, started_at, duration_ns, passed, broken_alg
        FROM runs
        ORDER BY seq DESC`)
	args := []interface{}{}
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, limit)
	}

	rows, err := tx.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var reports []*models.RunReport
	for rows.Next() {
		report, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for _, report := range reports {
		if err := loadResults(tx, report); err != nil {
			return nil, err
		}
	}

	return reports, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*models.RunReport, error) {
	var (
		report    models.RunReport
		startedAt time.Time
		duration  int64
	)

	if err := row.Scan(&report.ID, &startedAt, &duration, &report.Passed, &report.BrokenAlg); err != nil {
		return nil, err
	}

	report.StartedAt = startedAt.UTC()
	report.Duration = time.Duration(duration)
	report.Results = make([]models.TestResult, 0)
	return &report, nil
}

func loadResults(tx *sql.Tx, report *models.RunReport) error {
	rows, err := tx.Query(`
        SELECT alg, kind, status, op, error_kind, error, duration_ns
        FROM run_results
        WHERE run_id = ?
        ORDER BY position
    `, report.ID)
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			res       models.TestResult
			status    string
			errorKind string
			duration  int64
		)
		if err := rows.Scan(&res.Alg, &res.Kind, &status, &res.Op, &errorKind, &res.Error, &duration); err != nil {
			return fmt.Errorf("scan result row: %w", err)
		}
		res.Status = models.TestStatus(status)
		res.ErrorKind = models.ErrorKind(errorKind)
		res.Duration = time.Duration(duration)
		report.Results = append(report.Results, res)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate results: %w", err)
	}
	return nil
}
