package memory

import (
	"fmt"

	"github.com/steveyegge/graphstore/internal/types"
)

// insertEdgeIndicesLocked adds e's index entries: by_source, by_target,
// and (if e.Type set) by_type and by_source_type, per spec.md invariant 6.
// Caller must hold s.mu (write).
func (s *Store) insertEdgeIndicesLocked(id string, e types.Edge) {
	s.bySource[e.Source] = append(s.bySource[e.Source], id)
	s.byTarget[e.Target] = append(s.byTarget[e.Target], id)
	if e.Type != "" {
		s.byType[e.Type] = append(s.byType[e.Type], id)
		key := [2]string{e.Source, e.Type}
		s.byST[key] = append(s.byST[key], id)
	}
}

// removeEdgeIndicesLocked removes all four index entries for e. Caller
// must hold s.mu (write). Every entry removed here was added by the
// matching insertEdgeIndicesLocked call for the same id; if one is
// already missing, the primary table and an index have diverged, which
// spec.md §7 classifies as IndexInconsistent — a fatal bug, not a
// recoverable condition.
func (s *Store) removeEdgeIndicesLocked(id string, e types.Edge) {
	s.bySource[e.Source] = s.mustRemoveID(s.bySource[e.Source], id, e.ID, "by_source")
	s.byTarget[e.Target] = s.mustRemoveID(s.byTarget[e.Target], id, e.ID, "by_target")
	if e.Type != "" {
		s.byType[e.Type] = s.mustRemoveID(s.byType[e.Type], id, e.ID, "by_type")
		key := [2]string{e.Source, e.Type}
		s.byST[key] = s.mustRemoveID(s.byST[key], id, e.ID, "by_source_type")
	}
}

// mustRemoveID removes target from ids and returns the result. If target
// is absent, the index has already diverged from the primary table that
// is about to be updated to reflect its removal — panic with
// IndexInconsistencyError rather than silently let the divergence widen.
func (s *Store) mustRemoveID(ids []string, target, edgeID, index string) []string {
	for _, id := range ids {
		if id == target {
			return removeID(ids, target)
		}
	}
	panic(&types.IndexInconsistencyError{
		Store:  s.name,
		EdgeID: edgeID,
		Detail: fmt.Sprintf("expected edge id in %s index, not found", index),
	})
}

// reindexEdgeLocked removes old's index entries and inserts new's, in
// that order, per spec.md §4.1's maintenance rule. If source, target and
// type are all unchanged between old and new, it does no index work.
func (s *Store) reindexEdgeLocked(id string, old, new types.Edge) {
	if old.Source == new.Source && old.Target == new.Target && old.Type == new.Type {
		return
	}
	s.removeEdgeIndicesLocked(id, old)
	s.insertEdgeIndicesLocked(id, new)
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

// validateEdgeBinding checks e's source/target node types against sc's
// EdgeBinding constraint, if any is declared. An empty AllowedSourceTypes
// or AllowedTargetTypes means "no constraint" (spec.md §3).
func (s *Store) validateEdgeBinding(sc types.Schema, e types.Edge) error {
	binding := sc.Binding
	s.mu.RLock()
	source, srcOK := s.nodes[e.Source]
	target, tgtOK := s.nodes[e.Target]
	s.mu.RUnlock()

	if len(binding.AllowedSourceTypes) > 0 && srcOK && !contains(binding.AllowedSourceTypes, source.Type) {
		return types.NewSchemaViolation(sc.Name, "source", "node type "+source.Type+" not allowed by binding")
	}
	if len(binding.AllowedTargetTypes) > 0 && tgtOK && !contains(binding.AllowedTargetTypes, target.Type) {
		return types.NewSchemaViolation(sc.Name, "target", "node type "+target.Type+" not allowed by binding")
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// invalidateForEntity drops cache state that could be stale after a
// mutation touching kind/id (spec.md invariant 7: writes must invalidate
// matching cache entries atomically with the write). Edge mutations
// invalidate the outgoing-by-type cache for the edge's source and clear
// the path cache entirely, since a single edge weight/topology change can
// affect arbitrarily many cached shortest paths.
func (s *Store) invalidateForEntity(kind types.EntityKind, id string) {
	if kind != types.KindEdge {
		return
	}
	s.mu.RLock()
	row, ok := s.edges[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	s.cache.invalidatePrefix(fmt.Sprintf("%s|outgoing_edges|%s|", s.name, row.edge.Source))
	s.pathCache.clear()
}
