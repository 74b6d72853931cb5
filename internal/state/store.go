package state

import (
	"errors"
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/config"
	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// Store persists self-test run reports.
type Store interface {
	// Append records a finished run. IDs must be unique.
	Append(report *models.RunReport) error

	// Get retrieves one run by ID.
	Get(id string) (*models.RunReport, error)

	// List returns up to limit runs, newest first. A limit <= 0 means all.
	List(limit int) ([]*models.RunReport, error)

	// Close releases resources.
	Close() error
}

// Errors
var (
	ErrRunNotFound = errors.New("run not found")
	ErrRunExists   = errors.New("run already recorded")
	ErrRunCorrupt  = errors.New("run record is corrupt")
	ErrInvalidRun  = errors.New("run report has no id")
	ErrStoreClosed = errors.New("store is closed")
)

// CurrentSchemaVersion for migrations.
const CurrentSchemaVersion = 1

// Open creates the history store selected by cfg. The "none" backend keeps
// history in memory for the life of the process.
func Open(cfg *config.Config, logger *events.Logger) (Store, error) {
	if logger == nil {
		logger = events.Discard()
	}

	switch cfg.Storage.HistoryBackend {
	case "sqlite":
		return NewSQLiteStore(cfg.HistoryPath(), logger)
	case "bolt":
		return NewBoltStore(cfg.HistoryPath(), logger)
	case "none":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.Storage.HistoryBackend)
	}
}

func checkReport(report *models.RunReport) error {
	if report == nil || report.ID == "" {
		return ErrInvalidRun
	}
	return nil
}
