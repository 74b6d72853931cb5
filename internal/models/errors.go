package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a self-test failure.
type ErrorKind string

// Error kinds for structured error handling.
const (
	ErrCodeAllocation    ErrorKind = "ALLOCATION_ERROR"
	ErrCodeIneligible    ErrorKind = "INELIGIBLE_IMPLEMENTATION"
	ErrCodeSizeMismatch  ErrorKind = "SIZE_MISMATCH"
	ErrCodeKeySet        ErrorKind = "KEY_SET_ERROR"
	ErrCodeOperation     ErrorKind = "OPERATION_ERROR"
	ErrCodeMismatch      ErrorKind = "MISMATCH"
	ErrCodeInvalidVector ErrorKind = "INVALID_VECTOR"
)

// Sentinel errors, one per kind.
var (
	ErrAllocation    = errors.New("implementation unavailable")
	ErrIneligible    = errors.New("ineligible implementation")
	ErrSizeMismatch  = errors.New("declared size disagrees with test vector")
	ErrKeySet        = errors.New("failed to set key")
	ErrOperation     = errors.New("operation failed")
	ErrMismatch      = errors.New("wrong result")
	ErrInvalidVector = errors.New("invalid test vector")
)

var kindSentinels = map[ErrorKind]error{
	ErrCodeAllocation:    ErrAllocation,
	ErrCodeIneligible:    ErrIneligible,
	ErrCodeSizeMismatch:  ErrSizeMismatch,
	ErrCodeKeySet:        ErrKeySet,
	ErrCodeOperation:     ErrOperation,
	ErrCodeMismatch:      ErrMismatch,
	ErrCodeInvalidVector: ErrInvalidVector,
}

// Sentinel returns the sentinel error for a kind, or nil for an unknown kind.
func (k ErrorKind) Sentinel() error {
	return kindSentinels[k]
}

// SelfTestError describes the first failure of a single algorithm test.
type SelfTestError struct {
	Alg  string
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *SelfTestError) Error() string {
	msg := string(e.Kind)
	if s := e.Kind.Sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s [%s]: %s: %v", e.Alg, e.Op, e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s %s [%s]: %s", e.Alg, e.Op, e.Kind, msg)
}

// Unwrap exposes both the kind sentinel and the underlying cause, so
// errors.Is matches either of them.
func (e *SelfTestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.Sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of a self-test error, or "" when err is not one.
func KindOf(err error) ErrorKind {
	var ste *SelfTestError
	if errors.As(err, &ste) {
		return ste.Kind
	}
	return ""
}
