package state

import (
	"fmt"
	"sync"

	"github.com/TheMichaelB/cryptokat/internal/models"
)

// MemoryStore keeps run history in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	runs   []*models.RunReport
	byID   map[string]int
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

// Append stores a copy of report.
func (m *MemoryStore) Append(report *models.RunReport) error {
	if err := checkReport(report); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStoreClosed
	}
	if _, ok := m.byID[report.ID]; ok {
		return fmt.Errorf("%s: %w", report.ID, ErrRunExists)
	}

	m.byID[report.ID] = len(m.runs)
	m.runs = append(m.runs, copyReport(report))
	return nil
}

// Get returns a copy of the run with the given ID.
func (m *MemoryStore) Get(id string) (*models.RunReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}
	i, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return copyReport(m.runs[i]), nil
}

// List returns copies, newest first.
func (m *MemoryStore) List(limit int) ([]*models.RunReport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStoreClosed
	}

	var reports []*models.RunReport
	for i := len(m.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(reports) >= limit {
			break
		}
		reports = append(reports, copyReport(m.runs[i]))
	}
	return reports, nil
}

// Close drops all runs.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.runs = nil
	m.byID = nil
	return nil
}

// Return copies to avoid race conditions
func copyReport(r *models.RunReport) *models.RunReport {
	c := *r
	c.Results = append(make([]models.TestResult, 0, len(r.Results)), r.Results...)
	return &c
}
