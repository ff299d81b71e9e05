package memory

// PageRankOptions configures PageRank, per spec.md §4.3.3.
type PageRankOptions struct {
	Iterations     int
	Damping        float64
	WeightProperty string
	DefaultWeight  float64
}

func (o PageRankOptions) withDefaults() PageRankOptions {
	if o.Iterations <= 0 {
		o.Iterations = 20
	}
	if o.Damping == 0 {
		o.Damping = 0.85
	}
	if o.WeightProperty == "" {
		o.WeightProperty = "weight"
	}
	if o.DefaultWeight == 0 {
		o.DefaultWeight = 1.0
	}
	return o
}

// pageRank runs iterative PageRank with damping over every non-deleted
// node, using outgoing edge weight as the transition weight, per
// spec.md §4.3.3.
func (s *Store) pageRank(opts PageRankOptions) map[string]float64 {
	opts = opts.withDefaults()
	wopts := weightOptions{property: opts.WeightProperty, defaultW: opts.DefaultWeight, preferLower: true}

	s.mu.RLock()
	nodeIDs := make([]string, 0, len(s.nodes))
	for id, n := range s.nodes {
		if !n.Metadata.Deleted {
			nodeIDs = append(nodeIDs, id)
		}
	}
	s.mu.RUnlock()

	n := len(nodeIDs)
	if n == 0 {
		return map[string]float64{}
	}

	scores := make(map[string]float64, n)
	for _, id := range nodeIDs {
		scores[id] = 1.0 / float64(n)
	}

	outWeightSum := make(map[string]float64, n)
	outNeighbors := make(map[string][]Neighbor, n)
	for _, id := range nodeIDs {
		neighbors := s.outgoingEdges(id)
		outNeighbors[id] = neighbors
		var sum float64
		for _, nb := range neighbors {
			sum += wopts.extract(nb.Edge)
		}
		outWeightSum[id] = sum
	}

	jump := (1 - opts.Damping) / float64(n)

	for iter := 0; iter < opts.Iterations; iter++ {
		next := make(map[string]float64, n)
		for _, id := range nodeIDs {
			next[id] = jump
		}
		for _, u := range nodeIDs {
			total := outWeightSum[u]
			if total <= 0 {
				continue // sink: contributes nothing to successors
			}
			for _, nb := range outNeighbors[u] {
				if _, ok := scores[nb.NodeID]; !ok {
					continue // dangling edge to an unresolved node
				}
				w := wopts.extract(nb.Edge)
				next[nb.NodeID] += opts.Damping * scores[u] * w / total
			}
		}

		var sum float64
		for _, v := range next {
			sum += v
		}
		if sum > 0 {
			for id := range next {
				next[id] /= sum
			}
		}
		scores = next
	}

	return scores
}
