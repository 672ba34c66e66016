package utils

import (
	"errors"
	"fmt"
)

// ErrSyncFailed matches every SyncError through errors.Is.
var ErrSyncFailed = errors.New("sync failed")

// SyncStage names the reconciliation step that failed.
type SyncStage string

const (
	SyncStageDelete SyncStage = "delete"
	SyncStageInsert SyncStage = "insert"
)

// SyncError is returned by the reconciliation engine.
//
// Stage delete: nothing was changed, the previous holdings are still stored.
// Stage insert: the previous holdings were already deleted and the fresh set
// was not written, so the tuple reads as empty until the next successful sync.
type SyncError struct {
	Stage  SyncStage
	Broker string
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s sync failed at %s stage: %v", e.Broker, e.Stage, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

func (e *SyncError) Is(target error) bool { return target == ErrSyncFailed }

// AuthenticationError means the broker rejected the credentials or no session
// is available. New credentials are needed before retrying.
type AuthenticationError struct {
	Broker string
	Err    error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("%s authentication failed: %v", e.Broker, e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError wraps network and HTTP failures reaching a broker or the
// database. Callers may retry.
type TransportError struct {
	Broker     string
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Broker, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Broker, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports a record or request missing a required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
