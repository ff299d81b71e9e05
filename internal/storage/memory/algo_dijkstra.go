package memory

import (
	"container/heap"
	"context"
	"sync"

	"github.com/steveyegge/graphstore/internal/types"
)

// DijkstraOptions configures shortest-path search, per spec.md §4.3.2.
type DijkstraOptions struct {
	WeightProperty string
	DefaultWeight  float64
	PreferLower    bool
	Direction      Direction
	EdgeType       string
	UseCache       bool
}

func (o DijkstraOptions) withDefaults() DijkstraOptions {
	if o.WeightProperty == "" {
		o.WeightProperty = "weight"
	}
	if o.DefaultWeight == 0 {
		o.DefaultWeight = 1.0
	}
	if o.Direction == "" {
		o.Direction = DirOutgoing
	}
	return o
}

func (o DijkstraOptions) weightOptions() weightOptions {
	return weightOptions{property: o.WeightProperty, defaultW: o.DefaultWeight, preferLower: o.PreferLower}
}

// relaxed is a candidate (node, tentative distance) update produced by
// relaxing one edge, whether computed serially or by relaxParallel.
type relaxed struct {
	nodeID string
	dist   float64
	raw    float64 // the relaxed edge's stored weight, before any inversion
}

// pqItem is one entry in Dijkstra's priority queue, ordered by distance,
// then by node id.
type pqItem struct {
	nodeID string
	dist   float64
}

type priorityQueue []pqItem

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].nodeID < pq[j].nodeID
}
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(pqItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// dijkstra finds the shortest path from sourceID to targetID, per
// spec.md §4.3.2: an ordered priority queue keyed by (distance, node_id),
// lazy decrease-key (skip already-settled extractions), and a path
// result cache.
func (s *Store) dijkstra(ctx context.Context, sourceID, targetID string, opts DijkstraOptions) ([]string, float64, error) {
	opts = opts.withDefaults()

	s.mu.RLock()
	_, srcOK := s.nodes[sourceID]
	_, tgtOK := s.nodes[targetID]
	s.mu.RUnlock()
	if !srcOK {
		return nil, 0, types.NewNotFound(types.KindNode, sourceID)
	}
	if !tgtOK {
		return nil, 0, types.NewNotFound(types.KindNode, targetID)
	}

	cacheKey := pathCacheKey(s.name, sourceID, targetID, opts.WeightProperty, opts.DefaultWeight, opts.PreferLower, string(opts.Direction), opts.EdgeType)
	if opts.UseCache {
		if nodes, weight, ok := s.pathCache.get(cacheKey); ok {
			return nodes, weight, nil
		}
	}

	wopts := opts.weightOptions()
	dist := map[string]float64{sourceID: 0}
	rawDist := map[string]float64{sourceID: 0}
	prev := map[string]string{}
	settled := map[string]bool{}

	pq := &priorityQueue{{sourceID, 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(pqItem)
		if settled[cur.nodeID] {
			continue
		}
		settled[cur.nodeID] = true

		if cur.nodeID == targetID {
			break
		}

		neighbors := s.neighborsForDirection(ctx, cur.nodeID, opts.EdgeType, opts.Direction)

		var updates []relaxed

		if len(neighbors) > 50 {
			updates = s.relaxParallel(neighbors, cur.dist, wopts)
		} else {
			for _, nb := range neighbors {
				updates = append(updates, relaxed{nb.NodeID, cur.dist + wopts.selectionWeight(nb.Edge), wopts.extract(nb.Edge)})
			}
		}

		for _, u := range updates {
			if settled[u.nodeID] {
				continue
			}
			if best, ok := dist[u.nodeID]; !ok || u.dist < best {
				dist[u.nodeID] = u.dist
				rawDist[u.nodeID] = rawDist[cur.nodeID] + u.raw
				prev[u.nodeID] = cur.nodeID
				heap.Push(pq, pqItem{u.nodeID, u.dist})
			}
		}
	}

	if _, ok := dist[targetID]; !ok || !settled[targetID] {
		return nil, 0, types.ErrNoPathExists
	}

	path := []string{targetID}
	for node := targetID; node != sourceID; {
		p, ok := prev[node]
		if !ok {
			return nil, 0, types.ErrNoPathExists
		}
		path = append(path, p)
		node = p
	}
	reverseStrings(path)

	totalWeight := rawDist[targetID]
	if opts.UseCache {
		s.pathCache.put(cacheKey, path, totalWeight)
	}
	return path, totalWeight, nil
}

// relaxParallel splits neighbors into chunks of 25 and relaxes each chunk
// on up to 8 workers, merging results by taking the minimum distance per
// node; on equal distances the candidate from the later chunk wins. All
// candidates from one call share the same predecessor (the node being
// expanded). dijkstra's compare-and-set only replaces a recorded distance
// that is strictly larger, so on a tie with an earlier expansion the
// earlier-recorded predecessor is kept.
func (s *Store) relaxParallel(neighbors []Neighbor, baseDist float64, wopts weightOptions) []relaxed {
	chunks := chunkNeighbors(neighbors, 25)
	results := make([][]relaxed, len(chunks))

	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			out := make([]relaxed, 0, len(chunk))
			for _, nb := range chunk {
				out = append(out, relaxed{nb.NodeID, baseDist + wopts.selectionWeight(nb.Edge), wopts.extract(nb.Edge)})
			}
			results[i] = out
		}()
	}
	wg.Wait()

	merged := make(map[string]relaxed, len(neighbors))
	for _, chunkResult := range results {
		for _, r := range chunkResult {
			if existing, ok := merged[r.nodeID]; !ok || r.dist <= existing.dist {
				merged[r.nodeID] = r
			}
		}
	}

	out := make([]relaxed, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	return out
}

func chunkNeighbors(neighbors []Neighbor, size int) [][]Neighbor {
	var chunks [][]Neighbor
	for i := 0; i < len(neighbors); i += size {
		end := i + size
		if end > len(neighbors) {
			end = len(neighbors)
		}
		chunks = append(chunks, neighbors[i:end])
	}
	return chunks
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
