package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/types"
)

// TestS2EdgeIndicesAndDeletion is spec.md §8 scenario S2.
func TestS2EdgeIndicesAndDeletion(t *testing.T) {
	s := newTestStore("s2")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}

	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "b", Type: "k"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e2", Source: "a", Target: "c", Type: "k"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e3", Source: "a", Target: "b", Type: "m"})
	require.NoError(t, err)

	neighbors := s.outgoingEdgesByType("a", "k")
	assertNeighborIDs(t, neighbors, "e1", "e2")

	require.NoError(t, s.Delete(ctx, types.KindEdge, "e1"))

	neighbors = s.outgoingEdgesByType("a", "k")
	assertNeighborIDs(t, neighbors, "e2")

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.NotContains(t, s.bySource["a"], "e1")
	assert.NotContains(t, s.byST[[2]string{"a", "k"}], "e1")
}

func assertNeighborIDs(t *testing.T, neighbors []Neighbor, want ...string) {
	t.Helper()
	got := make([]string, 0, len(neighbors))
	for _, n := range neighbors {
		got = append(got, n.Edge.ID)
	}
	assert.ElementsMatch(t, want, got)
}

func TestIndexInvariantHoldsForEveryNonDeletedEdge(t *testing.T) {
	s := newTestStore("invariant")
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "b", Type: "k"})
	require.NoError(t, err)

	s.mu.RLock()
	defer s.mu.RUnlock()
	assert.Contains(t, s.bySource["a"], "e1")
	assert.Contains(t, s.byTarget["b"], "e1")
	assert.Contains(t, s.byType["k"], "e1")
	assert.Contains(t, s.byST[[2]string{"a", "k"}], "e1")
}

func TestRemoveEdgeIndicesPanicsOnDivergedIndex(t *testing.T) {
	s := newTestStore("diverged")
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "b", Type: "k"})
	require.NoError(t, err)

	// Simulate a corrupted by_source index (e.g. a bug elsewhere) by
	// scrubbing e1 out of it directly, bypassing the normal mutation path.
	s.mu.Lock()
	s.bySource["a"] = removeID(s.bySource["a"], "e1")
	e := s.edges["e1"].edge
	s.mu.Unlock()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		ie, ok := r.(*types.IndexInconsistencyError)
		require.True(t, ok)
		assert.Equal(t, "e1", ie.EdgeID)
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeEdgeIndicesLocked("e1", e)
}

func TestUpdateEdgeReindexesOnTopologyChange(t *testing.T) {
	s := newTestStore("reindex")
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "b", Type: "k"})
	require.NoError(t, err)

	_, err = s.Update(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "c", Type: "k"})
	require.NoError(t, err)

	s.mu.RLock()
	assert.NotContains(t, s.byTarget["b"], "e1")
	assert.Contains(t, s.byTarget["c"], "e1")
	s.mu.RUnlock()
}
