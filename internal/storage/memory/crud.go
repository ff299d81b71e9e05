package memory

import (
	"context"
	"fmt"

	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/idgen"
	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/types"
)

// RegisterSchema registers a user-defined entity subtype descriptor.
// Always succeeds, per spec.md §6.
func (s *Store) RegisterSchema(ctx context.Context, schema types.Schema) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.mu.Lock()
	s.schemas[schema.Name] = schema
	s.mu.Unlock()
	return nil
}

func (s *Store) schemaFor(subtype string) (types.Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.schemas[subtype]
	return sc, ok
}

// Insert stores a new record under kind, stamping fresh Metadata. See
// storage.Storage for the contract.
func (s *Store) Insert(ctx context.Context, kind types.EntityKind, subtype string, record storage.Record) (result storage.Record, err error) {
	_, end := s.withSpan(ctx, "Insert")
	defer end(&err)

	if sc, ok := s.schemaFor(subtype); ok {
		if data, hasData := dataOf(record); hasData {
			if verr := sc.Validate(data); verr != nil {
				return nil, verr
			}
		}
		if kind == types.KindEdge && sc.Binding != nil {
			if e, ok := record.(types.Edge); ok {
				if verr := s.validateEdgeBinding(sc, e); verr != nil {
					return nil, verr
				}
			}
		}
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	id := idOf(record)
	if id == "" {
		id = idgen.New()
	}

	s.mu.RLock()
	_, exists := s.existsLocked(kind, id)
	s.mu.RUnlock()
	if exists {
		return nil, types.NewIDAlreadyExists(id)
	}

	meta := stampCreate(kind, subtype)
	stored := withIDAndMetadata(record, id, meta)

	s.mu.Lock()
	s.storeLocked(kind, id, stored)
	s.mu.Unlock()

	s.publish(eventbus.EventCreate, kind, id, subtype)
	s.invalidateForEntity(kind, id)
	return stored, nil
}

// BatchInsert inserts each record independently, collecting failures.
func (s *Store) BatchInsert(ctx context.Context, kind types.EntityKind, subtype string, records []storage.Record) storage.BatchResult {
	var result storage.BatchResult
	for _, r := range records {
		stored, err := s.Insert(ctx, kind, subtype, r)
		if err != nil {
			result.Failed = append(result.Failed, storage.BatchFailure{Record: r, Reason: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, stored)
	}
	return result
}

// Update replaces an existing record's data, bumping Version by exactly
// one. Fails with ErrNotFound if id is absent or already deleted.
func (s *Store) Update(ctx context.Context, kind types.EntityKind, subtype string, record storage.Record) (result storage.Record, err error) {
	_, end := s.withSpan(ctx, "Update")
	defer end(&err)

	id := idOf(record)

	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.RLock()
	prior, ok := s.existsLocked(kind, id)
	s.mu.RUnlock()
	if !ok || prior.Deleted {
		return nil, types.NewNotFound(kind, id)
	}

	if sc, hasSchema := s.schemaFor(subtype); hasSchema {
		if data, hasData := dataOf(record); hasData {
			if verr := sc.Validate(data); verr != nil {
				return nil, verr
			}
		}
	}

	meta := stampUpdate(prior)
	stored := withIDAndMetadata(record, id, meta)

	s.mu.Lock()
	if kind == types.KindEdge {
		if oldRow, ok := s.edges[id]; ok {
			if newEdge, ok := stored.(types.Edge); ok {
				s.reindexEdgeLocked(id, oldRow.edge, newEdge)
			}
		}
	}
	s.storeLocked(kind, id, stored)
	s.mu.Unlock()

	s.publish(eventbus.EventUpdate, kind, id, subtype)
	s.invalidateForEntity(kind, id)
	return stored, nil
}

// BatchUpdate updates each record independently, collecting failures.
func (s *Store) BatchUpdate(ctx context.Context, kind types.EntityKind, subtype string, records []storage.Record) storage.BatchResult {
	var result storage.BatchResult
	for _, r := range records {
		stored, err := s.Update(ctx, kind, subtype, r)
		if err != nil {
			result.Failed = append(result.Failed, storage.BatchFailure{Record: r, Reason: err})
			continue
		}
		result.Succeeded = append(result.Succeeded, stored)
	}
	return result
}

// Delete soft-deletes the record, idempotently. Deleting an absent or
// already-deleted id still returns nil, per spec.md §6/§7.
func (s *Store) Delete(ctx context.Context, kind types.EntityKind, id string) (err error) {
	_, end := s.withSpan(ctx, "Delete")
	defer end(&err)

	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.RLock()
	prior, ok := s.existsLocked(kind, id)
	s.mu.RUnlock()
	if !ok || prior.Deleted {
		return nil
	}

	meta := stampDelete(prior)

	s.mu.Lock()
	switch kind {
	case types.KindGraph:
		g := s.graphs[id]
		g.Metadata = meta
		s.graphs[id] = g
	case types.KindNode:
		n := s.nodes[id]
		n.Metadata = meta
		s.nodes[id] = n
	case types.KindEdge:
		row := s.edges[id]
		row.edge.Metadata = meta
		s.edges[id] = row
		s.removeEdgeIndicesLocked(id, row.edge)
	}
	s.mu.Unlock()

	s.publish(eventbus.EventDelete, kind, id, "")
	s.invalidateForEntity(kind, id)
	return nil
}

// Get fetches one record by id, enforcing subtype match and tombstone
// visibility per spec.md §6/§7.
func (s *Store) Get(ctx context.Context, kind types.EntityKind, subtype, id string) (result storage.Record, err error) {
	_, end := s.withSpan(ctx, "Get")
	defer end(&err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.existsLocked(kind, id)
	if !ok {
		return nil, types.NewNotFound(kind, id)
	}
	if subtype != "" && meta.Module != "" && meta.Module != subtype {
		return nil, types.NewModuleMismatch(subtype, meta.Module)
	}
	if meta.Deleted {
		return nil, types.NewDeleted(kind, id)
	}

	switch kind {
	case types.KindGraph:
		return s.graphs[id], nil
	case types.KindNode:
		return s.nodes[id], nil
	case types.KindEdge:
		return s.edges[id].edge, nil
	default:
		return nil, fmt.Errorf("memory: unknown entity kind %q", kind)
	}
}

// existsLocked returns the Metadata of id within kind and whether it is
// present at all (deleted or not). Caller must hold s.mu (read or write).
func (s *Store) existsLocked(kind types.EntityKind, id string) (types.Metadata, bool) {
	switch kind {
	case types.KindGraph:
		g, ok := s.graphs[id]
		return g.Metadata, ok
	case types.KindNode:
		n, ok := s.nodes[id]
		return n.Metadata, ok
	case types.KindEdge:
		e, ok := s.edges[id]
		return e.edge.Metadata, ok
	default:
		return types.Metadata{}, false
	}
}

// storeLocked writes stored into the appropriate table and, for edges,
// (re)builds the index entries. Caller must hold s.mu (write).
func (s *Store) storeLocked(kind types.EntityKind, id string, stored storage.Record) {
	switch kind {
	case types.KindGraph:
		s.graphs[id] = stored.(types.Graph)
	case types.KindNode:
		s.nodes[id] = stored.(types.Node)
	case types.KindEdge:
		e := stored.(types.Edge)
		_, already := s.edges[id]
		s.edges[id] = edgeRow{edge: e}
		if !already {
			s.insertEdgeIndicesLocked(id, e)
		}
	}
}

func (s *Store) publish(kind eventbus.EventKind, entityKind types.EntityKind, id, subtype string) {
	meta := map[string]interface{}{}
	if subtype != "" {
		meta["type"] = subtype
	}
	s.bus.Publish(&eventbus.Event{
		ID:         idgen.NewPrefixed("evt"),
		Kind:       kind,
		Topic:      string(entityKind),
		EntityKind: entityKind,
		EntityID:   id,
		Metadata:   meta,
		Timestamp:  nowUTC(),
	})
}
