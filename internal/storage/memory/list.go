package memory

import (
	"context"
	"sort"

	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/types"
)

// All lists non-deleted records of kind matching filter, sorted and
// paginated per opts, per spec.md §4.1's listing semantics: pre-filter
// deleted at the table layer, apply the user filter, sort by id, then
// paginate.
func (s *Store) All(ctx context.Context, kind types.EntityKind, filter types.Filter, opts storage.ListOptions) (result []storage.Record, err error) {
	_, end := s.withSpan(ctx, "All")
	defer end(&err)

	s.mu.RLock()
	live := s.liveRecordsLocked(kind)
	s.mu.RUnlock()

	matched := make([]storage.Record, 0, len(live))
	for _, rec := range live {
		fields, metadata, data := flattenRecord(rec)
		if filter.MatchRecord(fields, metadata, data) {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		less := idOf(matched[i]) < idOf(matched[j])
		if opts.Sort == storage.SortDesc {
			return !less
		}
		return less
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return []storage.Record{}, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

// liveRecordsLocked returns every non-deleted record of kind. Caller must
// hold s.mu (read or write).
func (s *Store) liveRecordsLocked(kind types.EntityKind) []storage.Record {
	switch kind {
	case types.KindGraph:
		out := make([]storage.Record, 0, len(s.graphs))
		for _, g := range s.graphs {
			if !g.Metadata.Deleted {
				out = append(out, g)
			}
		}
		return out
	case types.KindNode:
		out := make([]storage.Record, 0, len(s.nodes))
		for _, n := range s.nodes {
			if !n.Metadata.Deleted {
				out = append(out, n)
			}
		}
		return out
	case types.KindEdge:
		out := make([]storage.Record, 0, len(s.edges))
		for _, row := range s.edges {
			if !row.edge.Metadata.Deleted {
				out = append(out, row.edge)
			}
		}
		return out
	default:
		return nil
	}
}

// flattenRecord exposes a record's top-level scalar fields plus its
// metadata/data sub-maps, for types.Filter.MatchRecord.
func flattenRecord(rec storage.Record) (fields, metadata, data map[string]interface{}) {
	switch r := rec.(type) {
	case types.Graph:
		return map[string]interface{}{"id": r.ID, "name": r.Name}, metadataToMap(r.Metadata), r.Data
	case types.Node:
		return map[string]interface{}{"id": r.ID, "graph_id": r.GraphID, "type": r.Type}, metadataToMap(r.Metadata), r.Data
	case types.Edge:
		return map[string]interface{}{"id": r.ID, "source": r.Source, "target": r.Target, "type": r.Type}, metadataToMap(r.Metadata), r.Data
	default:
		return nil, nil, nil
	}
}

func metadataToMap(m types.Metadata) map[string]interface{} {
	out := map[string]interface{}{
		"entity":     string(m.Entity),
		"module":     m.Module,
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
		"version":    m.Version,
		"deleted":    m.Deleted,
	}
	if m.DeletedAt != nil {
		out["deleted_at"] = *m.DeletedAt
	}
	return out
}
