package memory

import (
	"context"
	"fmt"

	"github.com/steveyegge/graphstore/internal/types"
)

// PathResult is Traverse's result shape for the "shortest_path" algorithm.
type PathResult struct {
	Nodes  []string
	Weight float64
}

// MSTResult is Traverse's result shape for the "minimum_spanning_tree"
// algorithm.
type MSTResult struct {
	Edges  []types.Edge
	Weight float64
}

// Traverse dispatches algorithm by name, per spec.md §4.1/§4.3. params
// carries algorithm-specific options as a loosely-typed map, mirroring
// the "algorithm tag + params" shape spec.md §6 describes for the
// external interface.
func (s *Store) Traverse(ctx context.Context, algorithm string, params map[string]interface{}) (result interface{}, err error) {
	_, end := s.withSpan(ctx, "Traverse."+algorithm)
	defer end(&err)

	switch algorithm {
	case "bfs":
		start, _ := params["start"].(string)
		if start == "" {
			return nil, fmt.Errorf("%w: bfs requires a start node id", types.ErrInvalidParams)
		}
		opts := BFSOptions{
			MaxDepth:   intParam(params, "max_depth", -1),
			Direction:  Direction(stringParam(params, "direction", string(DirOutgoing))),
			EdgeType:   stringParam(params, "edge_type", ""),
			Timeout:    durationMSParam(params, "timeout_ms", 5000),
			BestEffort: boolParam(params, "best_effort", false),
		}
		res, err := s.bfs(ctx, start, opts)
		if err != nil {
			return nil, err
		}
		return res, nil

	case "shortest_path":
		source, _ := params["source"].(string)
		target, _ := params["target"].(string)
		if source == "" || target == "" {
			return nil, fmt.Errorf("%w: shortest_path requires source and target", types.ErrInvalidParams)
		}
		opts := DijkstraOptions{
			WeightProperty: stringParam(params, "weight_property", "weight"),
			DefaultWeight:  floatParam(params, "default_weight", 1.0),
			PreferLower:    boolParam(params, "prefer_lower_weights", true),
			Direction:      Direction(stringParam(params, "direction", string(DirOutgoing))),
			EdgeType:       stringParam(params, "edge_type", ""),
			UseCache:       boolParam(params, "use_cache", true),
		}
		nodes, weight, err := s.dijkstra(ctx, source, target, opts)
		if err != nil {
			return nil, err
		}
		return PathResult{Nodes: nodes, Weight: weight}, nil

	case "pagerank":
		opts := PageRankOptions{
			Iterations:     intParam(params, "iterations", 20),
			Damping:        floatParam(params, "damping", 0.85),
			WeightProperty: stringParam(params, "weight_property", "weight"),
			DefaultWeight:  floatParam(params, "default_weight", 1.0),
		}
		return s.pageRank(opts), nil

	case "connected_components":
		opts := ComponentsOptions{
			EdgeType:  stringParam(params, "edge_type", ""),
			Direction: Direction(stringParam(params, "direction", string(DirBoth))),
		}
		return s.connectedComponents(opts), nil

	case "minimum_spanning_tree":
		opts := MSTOptions{
			WeightProperty: stringParam(params, "weight_property", "weight"),
			DefaultWeight:  floatParam(params, "default_weight", 1.0),
			PreferLower:    boolParam(params, "prefer_lower_weights", true),
			EdgeType:       stringParam(params, "edge_type", ""),
		}
		edges, weight := s.minimumSpanningTree(opts)
		return MSTResult{Edges: edges, Weight: weight}, nil

	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnsupportedAlgorithm, algorithm)
	}
}
