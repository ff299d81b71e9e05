package memory

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/graphstore/internal/types"
)

func toDuration(ms int64) time.Duration { return time.Duration(ms) * time.Millisecond }

// Neighbor pairs a reachable node id with the edge that reaches it.
type Neighbor struct {
	NodeID string
	Edge   types.Edge
}

// outgoingEdges returns (target_id, edge) pairs for nodeID via by_source,
// skipping deleted edges, per spec.md §4.2.
func (s *Store) outgoingEdges(nodeID string) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.bySource[nodeID]
	out := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		row, ok := s.edges[id]
		if !ok || row.edge.Metadata.Deleted {
			continue
		}
		out = append(out, Neighbor{NodeID: row.edge.Target, Edge: row.edge})
	}
	return out
}

// incomingEdges returns (source_id, edge) pairs for nodeID via by_target.
func (s *Store) incomingEdges(nodeID string) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byTarget[nodeID]
	out := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		row, ok := s.edges[id]
		if !ok || row.edge.Metadata.Deleted {
			continue
		}
		out = append(out, Neighbor{NodeID: row.edge.Source, Edge: row.edge})
	}
	return out
}

// edgesByType returns every non-deleted edge of the given type via
// by_type.
func (s *Store) edgesByType(edgeType string) []types.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.byType[edgeType]
	out := make([]types.Edge, 0, len(ids))
	for _, id := range ids {
		if row, ok := s.edges[id]; ok && !row.edge.Metadata.Deleted {
			out = append(out, row.edge)
		}
	}
	return out
}

// outgoingEdgesByType is the baseline strategy: intersect by_source[node]
// with by_type[type].
func (s *Store) outgoingEdgesByType(nodeID, edgeType string) []Neighbor {
	s.mu.RLock()
	sourceIDs := s.bySource[nodeID]
	typeSet := make(map[string]struct{}, len(s.byType[edgeType]))
	for _, id := range s.byType[edgeType] {
		typeSet[id] = struct{}{}
	}
	out := make([]Neighbor, 0)
	for _, id := range sourceIDs {
		if _, ok := typeSet[id]; !ok {
			continue
		}
		row, ok := s.edges[id]
		if !ok || row.edge.Metadata.Deleted {
			continue
		}
		out = append(out, Neighbor{NodeID: row.edge.Target, Edge: row.edge})
	}
	s.mu.RUnlock()
	return out
}

// outgoingEdgesByTypeOptimized does a direct by_source_type lookup, and on
// an empty result falls back to scanning outgoingEdges and filtering by
// type, tolerating edges inserted before the composite index existed for
// them (spec.md §4.2).
func (s *Store) outgoingEdgesByTypeOptimized(nodeID, edgeType string) []Neighbor {
	s.mu.RLock()
	ids := s.byST[[2]string{nodeID, edgeType}]
	out := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		row, ok := s.edges[id]
		if !ok || row.edge.Metadata.Deleted {
			continue
		}
		out = append(out, Neighbor{NodeID: row.edge.Target, Edge: row.edge})
	}
	s.mu.RUnlock()

	if len(out) > 0 {
		return out
	}
	return filterByType(s.outgoingEdges(nodeID), edgeType)
}

func filterByType(neighbors []Neighbor, edgeType string) []Neighbor {
	out := make([]Neighbor, 0, len(neighbors))
	for _, n := range neighbors {
		if n.Edge.Type == edgeType {
			out = append(out, n)
		}
	}
	return out
}

// outgoingEdgesByTypeParallel chunks the composite-index hit list and
// resolves each chunk concurrently, up to maxConcurrency workers, with
// the same empty-result fallback as the optimized variant.
func (s *Store) outgoingEdgesByTypeParallel(ctx context.Context, nodeID, edgeType string, maxConcurrency int) []Neighbor {
	if maxConcurrency <= 0 {
		maxConcurrency = 8
	}

	s.mu.RLock()
	ids := append([]string(nil), s.byST[[2]string{nodeID, edgeType}]...)
	s.mu.RUnlock()

	if len(ids) == 0 {
		return filterByType(s.outgoingEdges(nodeID), edgeType)
	}

	const chunkSize = 25
	chunks := chunkStrings(ids, chunkSize)
	results := make([][]Neighbor, len(chunks))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			results[i] = s.resolveEdgeIDs(chunk)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Neighbor, 0, len(ids))
	for _, r := range results {
		out = append(out, r...)
	}
	return out
}

func (s *Store) resolveEdgeIDs(ids []string) []Neighbor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Neighbor, 0, len(ids))
	for _, id := range ids {
		row, ok := s.edges[id]
		if !ok || row.edge.Metadata.Deleted {
			continue
		}
		out = append(out, Neighbor{NodeID: row.edge.Target, Edge: row.edge})
	}
	return out
}

func chunkStrings(ids []string, size int) [][]string {
	var chunks [][]string
	for i := 0; i < len(ids); i += size {
		end := i + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[i:end])
	}
	return chunks
}

// AdaptiveOptions bounds the thresholds outgoingEdgesAdaptive chooses
// between, per spec.md §4.2.
type AdaptiveOptions struct {
	ThresholdMedium int
	ThresholdLarge  int
	MaxConcurrency  int
}

func (o AdaptiveOptions) withDefaults() AdaptiveOptions {
	if o.ThresholdMedium <= 0 {
		o.ThresholdMedium = 1_000
	}
	if o.ThresholdLarge <= 0 {
		o.ThresholdLarge = 10_000
	}
	if o.MaxConcurrency <= 0 {
		o.MaxConcurrency = 8
	}
	return o
}

// outgoingEdgesAdaptive picks baseline/optimized/parallel by comparing
// the store's current edge count to opts' thresholds.
func (s *Store) outgoingEdgesAdaptive(ctx context.Context, nodeID, edgeType string, opts AdaptiveOptions) []Neighbor {
	opts = opts.withDefaults()
	s.mu.RLock()
	n := len(s.edges)
	s.mu.RUnlock()

	switch {
	case n < opts.ThresholdMedium:
		return s.outgoingEdgesByType(nodeID, edgeType)
	case n < opts.ThresholdLarge:
		return s.outgoingEdgesByTypeOptimized(nodeID, edgeType)
	default:
		return s.outgoingEdgesByTypeParallel(ctx, nodeID, edgeType, opts.MaxConcurrency)
	}
}

// CachedQueryOptions controls outgoingEdgesByTypeCached.
type CachedQueryOptions struct {
	UseCache     bool
	RefreshCache bool
	TTL          int64 // milliseconds; 0 means the cache default
}

// outgoingEdgesByTypeCached wraps outgoingEdgesByTypeOptimized with the
// per-store result cache, per spec.md §4.2.
func (s *Store) outgoingEdgesByTypeCached(nodeID, edgeType string, opts CachedQueryOptions) []Neighbor {
	key := outgoingByTypeKey(s.name, nodeID, edgeType)

	if opts.UseCache && !opts.RefreshCache {
		if v, ok := s.cache.get(key); ok {
			s.inst.cacheHits.Add(context.Background(), 1)
			return v.([]Neighbor)
		}
		s.inst.cacheMiss.Add(context.Background(), 1)
	}

	result := s.outgoingEdgesByTypeOptimized(nodeID, edgeType)

	if opts.UseCache {
		ttl := toDuration(opts.TTL)
		s.cache.put(key, result, ttl)
	}
	return result
}

// sortNeighborsByID sorts neighbors by target/source node id ascending,
// the deterministic ordering BFS relies on (spec.md §4.3.1). Callers skip
// this when the neighbor count exceeds 100, per the spec's performance
// carve-out.
func sortNeighborsByID(neighbors []Neighbor) {
	sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].NodeID < neighbors[j].NodeID })
}
