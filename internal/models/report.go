package models

import (
	"time"
)

// TestStatus is the outcome of one algorithm test within a run.
type TestStatus string

const (
	StatusPass TestStatus = "PASS"
	StatusFail TestStatus = "FAIL"
	StatusSkip TestStatus = "SKIP" // not executed because an earlier test failed
)

// TestResult records one algorithm test.
type TestResult struct {
	Alg       string        `json:"alg"`
	Kind      string        `json:"kind"`
	Status    TestStatus    `json:"status"`
	Op        string        `json:"op,omitempty"`
	ErrorKind ErrorKind     `json:"error_kind,omitempty"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
}

// RunReport summarizes a complete self-test run.
type RunReport struct {
	ID        string        `json:"id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	Passed    bool          `json:"passed"`
	BrokenAlg string        `json:"broken_alg,omitempty"`
	Results   []TestResult  `json:"results"`
}

// NewRunReport creates an empty report.
func NewRunReport(id string, startedAt time.Time) *RunReport {
	return &RunReport{
		ID:        id,
		StartedAt: startedAt,
		Results:   make([]TestResult, 0),
	}
}

// Failure returns the failing test, or nil if none failed.
func (r *RunReport) Failure() *TestResult {
	for i := range r.Results {
		if r.Results[i].Status == StatusFail {
			return &r.Results[i]
		}
	}
	return nil
}

// Count returns the number of results with the given status.
func (r *RunReport) Count(status TestStatus) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
