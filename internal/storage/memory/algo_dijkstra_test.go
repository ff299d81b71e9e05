package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/types"
)

func buildWeightedGraph(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c", "d"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	edges := []types.Edge{
		{ID: "ab", Source: "a", Target: "b", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "ac", Source: "a", Target: "c", Data: map[string]interface{}{"weight": 5.0}},
		{ID: "bc", Source: "b", Target: "c", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "cd", Source: "c", Target: "d", Data: map[string]interface{}{"weight": 1.0}},
		{ID: "bd", Source: "b", Target: "d", Data: map[string]interface{}{"weight": 10.0}},
	}
	for _, e := range edges {
		_, err := s.Insert(ctx, types.KindEdge, "", e)
		require.NoError(t, err)
	}
}

// TestS4ShortestPathWithWeights is spec.md §8 scenario S4.
func TestS4ShortestPathWithWeights(t *testing.T) {
	s := newTestStore("s4")
	buildWeightedGraph(t, s)

	nodes, weight, err := s.dijkstra(context.Background(), "a", "d", DijkstraOptions{PreferLower: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, nodes)
	assert.Equal(t, 3.0, weight)
}

func TestDijkstraNoPathExists(t *testing.T) {
	s := newTestStore("nopath")
	ctx := context.Background()
	_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: "a"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.KindNode, "", types.Node{ID: "b"})
	require.NoError(t, err)

	_, _, err = s.dijkstra(ctx, "a", "b", DijkstraOptions{})
	assert.True(t, errors.Is(err, types.ErrNoPathExists))
}

func TestDijkstraNodeNotFound(t *testing.T) {
	s := newTestStore("missing")
	ctx := context.Background()
	_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: "a"})
	require.NoError(t, err)

	_, _, err = s.dijkstra(ctx, "a", "ghost", DijkstraOptions{})
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestDijkstraUsesDefaultWeightWhenMissing(t *testing.T) {
	s := newTestStore("default-weight")
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "ab", Source: "a", Target: "b"})
	require.NoError(t, err)

	nodes, weight, err := s.dijkstra(ctx, "a", "b", DijkstraOptions{DefaultWeight: 2.5})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, nodes)
	assert.Equal(t, 2.5, weight)
}

func TestDijkstraCachesSuccessfulResult(t *testing.T) {
	s := newTestStore("path-cache")
	buildWeightedGraph(t, s)

	_, _, err := s.dijkstra(context.Background(), "a", "d", DijkstraOptions{UseCache: true, PreferLower: true})
	require.NoError(t, err)

	key := pathCacheKey("path-cache", "a", "d", "weight", 1.0, true, "outgoing", "")
	_, _, ok := s.pathCache.get(key)
	assert.True(t, ok)
}
