package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/types"
)

func TestPageRankScoresSumToOne(t *testing.T) {
	s := newTestStore("pagerank")
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	for i, e := range [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}} {
		_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: string(rune('1' + i)), Source: e[0], Target: e[1]})
		require.NoError(t, err)
	}

	scores := s.pageRank(PageRankOptions{Iterations: 20, Damping: 0.85})
	var sum float64
	for _, v := range scores {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPageRankHandlesSinkNodes(t *testing.T) {
	s := newTestStore("sink")
	ctx := context.Background()
	for _, id := range []string{"a", "b"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}
	// b is a sink: no outgoing edges.
	_, err := s.Insert(ctx, types.KindEdge, "", types.Edge{ID: "e1", Source: "a", Target: "b"})
	require.NoError(t, err)

	scores := s.pageRank(PageRankOptions{Iterations: 10})
	assert.Contains(t, scores, "a")
	assert.Contains(t, scores, "b")
	var sum float64
	for _, v := range scores {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestPageRankEmptyGraph(t *testing.T) {
	s := newTestStore("empty")
	scores := s.pageRank(PageRankOptions{})
	assert.Empty(t, scores)
}
