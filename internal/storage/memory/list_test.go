package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/types"
)

func TestAllSortAndPaginate(t *testing.T) {
	s := newTestStore("list")
	ctx := context.Background()
	for _, id := range []string{"c", "a", "b"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}

	asc, err := s.All(ctx, types.KindNode, types.Filter{}, storage.ListOptions{Sort: storage.SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, idsOf(asc))

	desc, err := s.All(ctx, types.KindNode, types.Filter{}, storage.ListOptions{Sort: storage.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, idsOf(desc))

	page, err := s.All(ctx, types.KindNode, types.Filter{}, storage.ListOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, idsOf(page))
}

func TestAllExcludesDeletedAndAppliesFilter(t *testing.T) {
	s := newTestStore("filtered")
	ctx := context.Background()
	_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: "n1", Type: "person"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.KindNode, "", types.Node{ID: "n2", Type: "org"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, types.KindNode, "", types.Node{ID: "n3", Type: "person"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, types.KindNode, "n3"))

	results, err := s.All(ctx, types.KindNode, types.Filter{"type": types.Literal("person")}, storage.ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, idsOf(results))
}

func TestAllOffsetBeyondLengthReturnsEmpty(t *testing.T) {
	s := newTestStore("offset-overflow")
	_, err := s.Insert(context.Background(), types.KindNode, "", types.Node{ID: "n1"})
	require.NoError(t, err)

	results, err := s.All(context.Background(), types.KindNode, types.Filter{}, storage.ListOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func idsOf(records []storage.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.(types.Node).ID
	}
	return out
}
