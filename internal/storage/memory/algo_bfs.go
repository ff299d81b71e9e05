package memory

import (
	"context"
	"time"

	"github.com/steveyegge/graphstore/internal/types"
)

// Direction selects which edge indices a traversal or algorithm follows.
type Direction string

const (
	DirOutgoing Direction = "outgoing"
	DirIncoming Direction = "incoming"
	DirBoth     Direction = "both"
)

// BFSOptions configures BFS, per spec.md §4.3.1. MaxDepth uses -1 to mean
// "apply the default (10)"; 0 is a valid explicit depth meaning "start
// node only".
type BFSOptions struct {
	MaxDepth     int
	Direction    Direction
	EdgeType     string
	Timeout      time.Duration
	BestEffort   bool // inherited convention: return [{id:start}] instead of NodeNotFound
	AdaptiveOpts AdaptiveOptions
}

func (o BFSOptions) withDefaults() BFSOptions {
	if o.MaxDepth < 0 {
		o.MaxDepth = 10
	}
	if o.Direction == "" {
		o.Direction = DirOutgoing
	}
	if o.Timeout <= 0 {
		o.Timeout = 5 * time.Second
	}
	return o
}

// BFSResult is BFS's output: the reachable node ids in traversal order,
// start node first.
type BFSResult struct {
	NodeIDs  []string
	TimedOut bool
}

// bfs performs a breadth-first traversal from startID, honoring the
// max-depth and wall-clock budget, per spec.md §4.3.1.
func (s *Store) bfs(ctx context.Context, startID string, opts BFSOptions) (BFSResult, error) {
	opts = opts.withDefaults()

	s.mu.RLock()
	_, startExists := s.nodes[startID]
	s.mu.RUnlock()

	if !startExists {
		if opts.BestEffort && opts.EdgeType != "" {
			return BFSResult{NodeIDs: []string{startID}}, nil
		}
		return BFSResult{}, types.NewNotFound(types.KindNode, startID)
	}

	if opts.MaxDepth == 0 {
		return BFSResult{NodeIDs: []string{startID}}, nil
	}

	deadline := time.Now().Add(opts.Timeout)
	visited := map[string]struct{}{startID: {}}
	order := []string{startID}

	type frontierItem struct {
		id    string
		depth int
	}
	queue := []frontierItem{{startID, 0}}

	for len(queue) > 0 {
		if time.Now().After(deadline) {
			return BFSResult{NodeIDs: order, TimedOut: true}, nil
		}
		select {
		case <-ctx.Done():
			return BFSResult{NodeIDs: order, TimedOut: true}, nil
		default:
		}

		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= opts.MaxDepth {
			continue
		}

		neighbors := s.neighborsForDirection(ctx, cur.id, opts.EdgeType, opts.Direction)
		if len(neighbors) <= 100 {
			sortNeighborsByID(neighbors)
		}

		for _, nb := range neighbors {
			if _, seen := visited[nb.NodeID]; seen {
				continue
			}
			visited[nb.NodeID] = struct{}{}
			order = append(order, nb.NodeID)
			queue = append(queue, frontierItem{nb.NodeID, cur.depth + 1})
		}
	}

	return BFSResult{NodeIDs: order}, nil
}

// neighborsForDirection dispatches to the adaptive outgoing lookup,
// incoming lookup, or both, merging results for DirBoth.
func (s *Store) neighborsForDirection(ctx context.Context, nodeID, edgeType string, dir Direction) []Neighbor {
	switch dir {
	case DirIncoming:
		return s.incomingNeighborsFiltered(nodeID, edgeType)
	case DirBoth:
		out := s.outgoingNeighborsFiltered(ctx, nodeID, edgeType)
		return append(out, s.incomingNeighborsFiltered(nodeID, edgeType)...)
	default:
		return s.outgoingNeighborsFiltered(ctx, nodeID, edgeType)
	}
}

func (s *Store) outgoingNeighborsFiltered(ctx context.Context, nodeID, edgeType string) []Neighbor {
	if edgeType == "" {
		return s.outgoingEdges(nodeID)
	}
	return s.outgoingEdgesAdaptive(ctx, nodeID, edgeType, AdaptiveOptions{})
}

func (s *Store) incomingNeighborsFiltered(nodeID, edgeType string) []Neighbor {
	neighbors := s.incomingEdges(nodeID)
	if edgeType == "" {
		return neighbors
	}
	return filterByType(neighbors, edgeType)
}
