// Package storage defines the interface every graph store adapter
// implements, plus the adapter-agnostic option types used by its
// operations. The in-memory adapter lives in internal/storage/memory;
// this package only carries the contract, matching the teacher's own
// split of "interface in storage, implementation in storage/<backend>".
package storage

import (
	"context"

	"github.com/steveyegge/graphstore/internal/types"
)

// SortOrder controls the ordering applied by All before pagination.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListOptions carries the sort/offset/limit parameters for All, per
// spec.md §4.1's "Listing semantics".
type ListOptions struct {
	Sort   SortOrder
	Offset int
	Limit  int // 0 means unbounded
}

// BatchResult is the partial-failure shape shared by BatchInsert and
// BatchUpdate (spec.md §6: "same partial shape as batch insert").
type BatchResult struct {
	Succeeded []Record
	Failed    []BatchFailure
}

// BatchFailure pairs a rejected record with the reason it failed.
type BatchFailure struct {
	Record Record
	Reason error
}

// Record is the adapter-agnostic shape of a stored entity: a Graph, Node,
// or Edge. Concrete callers type-assert to the kind they asked for; kind
// mismatches never happen because Storage methods are parameterized by
// types.EntityKind and always return the matching concrete type wrapped
// here.
type Record interface{}

// Storage is the contract every adapter satisfies. It owns the primary
// tables and all secondary indices for one store instance (spec.md
// §4.1): "All reads and writes traverse this component. It is the only
// writer to the indices."
type Storage interface {
	// RegisterSchema registers a user-defined entity subtype descriptor.
	// Always succeeds (spec.md §6).
	RegisterSchema(ctx context.Context, schema types.Schema) error

	// Insert stores a new record, stamping fresh Metadata. Fails with
	// ErrIDAlreadyExists if the id is already present, ErrSchemaViolation
	// if a registered schema rejects the data.
	Insert(ctx context.Context, kind types.EntityKind, subtype string, record Record) (Record, error)

	// BatchInsert inserts many records, collecting per-record failures
	// rather than aborting on the first one.
	BatchInsert(ctx context.Context, kind types.EntityKind, subtype string, records []Record) BatchResult

	// Update replaces an existing record's data, bumping Version by
	// exactly 1 and stamping UpdatedAt. Fails with ErrNotFound if the id
	// is absent or already deleted.
	Update(ctx context.Context, kind types.EntityKind, subtype string, record Record) (Record, error)

	// BatchUpdate updates many records with the same partial-failure
	// shape as BatchInsert.
	BatchUpdate(ctx context.Context, kind types.EntityKind, subtype string, records []Record) BatchResult

	// Delete soft-deletes a record. Idempotent: deleting an already
	// deleted or absent record still returns nil.
	Delete(ctx context.Context, kind types.EntityKind, id string) error

	// Get fetches one record by id. Returns ErrNotFound if absent,
	// ErrDeleted if tombstoned, ErrModuleMismatch if subtype doesn't
	// match the stored record's Metadata.Module.
	Get(ctx context.Context, kind types.EntityKind, subtype, id string) (Record, error)

	// All lists non-deleted records of kind matching filter, sorted and
	// paginated per opts.
	All(ctx context.Context, kind types.EntityKind, filter types.Filter, opts ListOptions) ([]Record, error)

	// Traverse runs a named graph algorithm with the given params and
	// returns its algorithm-specific result.
	Traverse(ctx context.Context, algorithm string, params map[string]interface{}) (interface{}, error)

	// Name reports the store's configured name.
	Name() string

	// AdapterKind reports the backing adapter, e.g. "memory".
	AdapterKind() string

	// Close shuts the store down. The in-memory adapter only marks itself
	// closed: its tables, indices, caches and subscriptions are not
	// released.
	Close()
}
