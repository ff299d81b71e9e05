package memory

import (
	"time"

	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/types"
)

// idOf extracts the caller-supplied id from a record prior to storage, if
// any (empty string means "generate one").
func idOf(record storage.Record) string {
	switch r := record.(type) {
	case types.Graph:
		return r.ID
	case types.Node:
		return r.ID
	case types.Edge:
		return r.ID
	default:
		return ""
	}
}

// dataOf extracts the data map a schema should validate against.
func dataOf(record storage.Record) (map[string]interface{}, bool) {
	switch r := record.(type) {
	case types.Graph:
		return r.Data, r.Data != nil
	case types.Node:
		return r.Data, r.Data != nil
	case types.Edge:
		return r.Data, r.Data != nil
	default:
		return nil, false
	}
}

// withIDAndMetadata returns a copy of record with its ID and Metadata set,
// preserving every other field the caller supplied.
func withIDAndMetadata(record storage.Record, id string, meta types.Metadata) storage.Record {
	switch r := record.(type) {
	case types.Graph:
		r.ID = id
		r.Metadata = meta
		return r
	case types.Node:
		r.ID = id
		r.Metadata = meta
		return r
	case types.Edge:
		r.ID = id
		r.Metadata = meta
		return r
	default:
		return record
	}
}

func nowUTC() time.Time { return time.Now().UTC() }
