package state

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/TheMichaelB/cryptokat/internal/events"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

var (
	bucketRuns  = []byte("runs")        // sequence -> JSON report
	bucketIndex = []byte("runs_by_id")  // id -> sequence
	bucketMeta  = []byte("schema_info") // "version" -> uint64
)

// BoltStore implements bbolt-based run history. Runs are keyed by an
// increasing sequence so a reverse cursor walk yields newest first.
type BoltStore struct {
	db     *bolt.DB
	logger *events.Logger
}

// NewBoltStore opens or creates a bbolt history file.
func NewBoltStore(path string, logger *events.Logger) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketRuns, bucketIndex, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", string(b), err)
			}
		}
		return tx.Bucket(bucketMeta).Put([]byte("version"), seqKey(CurrentSchemaVersion))
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BoltStore{
		db:     db,
		logger: logger.WithField("component", "bolt_history_store"),
	}, nil
}

// Append stores a run as JSON under the next sequence number.
func (s *BoltStore) Append(report *models.RunReport) error {
	if err := checkReport(report); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"run_id":  report.ID,
		"passed":  report.Passed,
		"results": len(report.Results),
	}).Debug("Saving run to bbolt")

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(bucketIndex)
		if index.Get([]byte(report.ID)) != nil {
			return fmt.Errorf("%s: %w", report.ID, ErrRunExists)
		}

		runs := tx.Bucket(bucketRuns)
		seq, err := runs.NextSequence()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		key := seqKey(seq)
		if err := runs.Put(key, data); err != nil {
			return fmt.Errorf("put run: %w", err)
		}
		return index.Put([]byte(report.ID), key)
	})
}

// Get retrieves a run by ID.
func (s *BoltStore) Get(id string) (*models.RunReport, error) {
	var report *models.RunReport

	err := s.db.View(func(tx *bolt.Tx) error {
		key := tx.Bucket(bucketIndex).Get([]byte(id))
		if key == nil {
			return fmt.Errorf("%s: %w", id, ErrRunNotFound)
		}

		data := tx.Bucket(bucketRuns).Get(key)
		if data == nil {
			return fmt.Errorf("%s: %w", id, ErrRunCorrupt)
		}

		var err error
		report, err = decodeRun(data)
		return err
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

// List walks the runs bucket backwards.
func (s *BoltStore) List(limit int) ([]*models.RunReport, error) {
	var reports []*models.RunReport

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketRuns).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(reports) >= limit {
				break
			}
			report, err := decodeRun(v)
			if err != nil {
				return fmt.Errorf("run %d: %w", binary.BigEndian.Uint64(k), err)
			}
			reports = append(reports, report)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// decodeRun copies out of v, which bbolt owns only for the transaction.
func decodeRun(v []byte) (*models.RunReport, error) {
	var report models.RunReport
	if err := json.Unmarshal(v, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRunCorrupt, err)
	}
	if report.Results == nil {
		report.Results = make([]models.TestResult, 0)
	}
	return &report, nil
}
