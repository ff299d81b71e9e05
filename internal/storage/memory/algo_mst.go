package memory

import (
	"sort"

	"github.com/steveyegge/graphstore/internal/types"
)

// MSTOptions configures Kruskal MST, per spec.md §4.3.5. PreferLower
// false requests a maximum spanning tree/forest.
type MSTOptions struct {
	WeightProperty string
	DefaultWeight  float64
	PreferLower    bool
	EdgeType       string
}

func (o MSTOptions) withDefaults() MSTOptions {
	if o.WeightProperty == "" {
		o.WeightProperty = "weight"
	}
	if o.DefaultWeight == 0 {
		o.DefaultWeight = 1.0
	}
	return o
}

// minimumSpanningTree sorts candidate edges by weight and greedily
// accepts an edge whenever its endpoints are in different components,
// producing a spanning forest for disconnected graphs (spec.md §4.3.5).
func (s *Store) minimumSpanningTree(opts MSTOptions) ([]types.Edge, float64) {
	opts = opts.withDefaults()
	wopts := weightOptions{property: opts.WeightProperty, defaultW: opts.DefaultWeight, preferLower: opts.PreferLower}

	s.mu.RLock()
	nodeIDs := make([]string, 0, len(s.nodes))
	for id, n := range s.nodes {
		if !n.Metadata.Deleted {
			nodeIDs = append(nodeIDs, id)
		}
	}
	candidates := make([]types.Edge, 0, len(s.edges))
	for _, row := range s.edges {
		if row.edge.Metadata.Deleted {
			continue
		}
		if opts.EdgeType != "" && row.edge.Type != opts.EdgeType {
			continue
		}
		candidates = append(candidates, row.edge)
	}
	s.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		wi, wj := wopts.extract(candidates[i]), wopts.extract(candidates[j])
		if opts.PreferLower {
			return wi < wj
		}
		return wi > wj
	})

	uf := newUnionFind(nodeIDs)
	var tree []types.Edge
	var total float64
	for _, e := range candidates {
		if _, ok := uf.parent[e.Source]; !ok {
			continue
		}
		if _, ok := uf.parent[e.Target]; !ok {
			continue
		}
		if uf.union(e.Source, e.Target) {
			tree = append(tree, e)
			total += wopts.extract(e)
		}
	}

	return tree, total
}
