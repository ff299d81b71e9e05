package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the taxonomy in spec.md §7. Callers match on these
// with errors.Is, exactly as the teacher's storage backends do with
// ErrNotFound/ErrConflict (see internal/storage's prior sqlite.errors.go).
var (
	ErrNotFound             = errors.New("not found")
	ErrDeleted              = errors.New("deleted")
	ErrModuleMismatch       = errors.New("module mismatch")
	ErrIDAlreadyExists      = errors.New("id already exists")
	ErrSchemaViolation      = errors.New("schema violation")
	ErrInvalidParams        = errors.New("invalid params")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
	ErrNoPathExists         = errors.New("no path exists")
	ErrTimeout              = errors.New("timeout")
)

// NewSchemaViolation builds a descriptive error wrapping ErrSchemaViolation.
func NewSchemaViolation(subtype, field, reason string) error {
	return fmt.Errorf("schema %q field %q: %s: %w", subtype, field, reason, ErrSchemaViolation)
}

// NewModuleMismatch builds a descriptive error wrapping ErrModuleMismatch.
func NewModuleMismatch(wantModule, gotModule string) error {
	return fmt.Errorf("expected subtype %q, got %q: %w", wantModule, gotModule, ErrModuleMismatch)
}

// NewIDAlreadyExists builds a descriptive error wrapping ErrIDAlreadyExists.
func NewIDAlreadyExists(id string) error {
	return fmt.Errorf("id %q: %w", id, ErrIDAlreadyExists)
}

// NewNotFound builds a descriptive error wrapping ErrNotFound.
func NewNotFound(kind EntityKind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// NewDeleted builds a descriptive error wrapping ErrDeleted.
func NewDeleted(kind EntityKind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrDeleted)
}

// IndexInconsistencyError is the panic value raised when index maintenance
// detects a state that should be provably unreachable (spec.md §7:
// IndexInconsistent "must never surface; if detected, is a fatal bug").
// It is never returned as an error — callers recover it at a supervisor
// boundary (cmd/graphstore's top-level recover is the one this repo ships).
type IndexInconsistencyError struct {
	Store  string
	Detail string
	EdgeID string
}

func (e *IndexInconsistencyError) Error() string {
	return fmt.Sprintf("graphstore: index inconsistency in store %q (edge %q): %s", e.Store, e.EdgeID, e.Detail)
}
