package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/types"
)

// TestS6SubscriptionMatchAndInvalidation is spec.md §8 scenario S6.
func TestS6SubscriptionMatchAndInvalidation(t *testing.T) {
	s := newTestStore("s6")
	ctx := context.Background()

	received := make(chan *eventbus.Event, 8)
	s.Bus().Subscribe(eventbus.TopicKindPattern(types.KindEdge), eventbus.SubscribeOptions{
		Events: []eventbus.EventKind{eventbus.EventCreate, eventbus.EventDelete},
	}, eventbus.SubscriberFunc(func(e *eventbus.Event) { received <- e }))

	for _, id := range []string{"x", "y"} {
		_, err := s.Insert(ctx, types.KindNode, "", types.Node{ID: id})
		require.NoError(t, err)
	}

	neighbors := s.outgoingEdgesByTypeCached("x", "t", CachedQueryOptions{UseCache: true})
	assert.Empty(t, neighbors)

	stored, err := s.Insert(ctx, types.KindEdge, "", types.Edge{Source: "x", Target: "y", Type: "t"})
	require.NoError(t, err)
	newEdgeID := stored.(types.Edge).ID

	select {
	case e := <-received:
		assert.Equal(t, eventbus.EventCreate, e.Kind)
		assert.Equal(t, newEdgeID, e.EntityID)
	case <-time.After(time.Second):
		t.Fatal("expected a create event")
	}

	neighbors = s.outgoingEdgesByTypeCached("x", "t", CachedQueryOptions{UseCache: true})
	require.Len(t, neighbors, 1)
	assert.Equal(t, newEdgeID, neighbors[0].Edge.ID)
}

func TestResultCacheTTLExpiry(t *testing.T) {
	c := newResultCache(10, 10*time.Millisecond)
	c.put("k", "v", 0)

	v, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	time.Sleep(15 * time.Millisecond)
	_, ok = c.get("k")
	assert.False(t, ok)
}

func TestResultCacheEvictsOldestOnOverflow(t *testing.T) {
	c := newResultCache(5, time.Minute)
	for i := 0; i < 5; i++ {
		c.put(string(rune('a'+i)), i, time.Minute)
	}
	c.evictOldestLocked(0.2)
	assert.Len(t, c.entries, 4)
}

func TestPathCacheRoundTrip(t *testing.T) {
	c := newPathCache(10, time.Minute)
	c.put("k", []string{"a", "b"}, 2.0)

	nodes, weight, ok := c.get("k")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, nodes)
	assert.Equal(t, 2.0, weight)
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := newResultCache(10, time.Minute)
	c.put("store|outgoing_edges|a|k", 1, time.Minute)
	c.put("store|outgoing_edges|a|m", 1, time.Minute)
	c.put("store|outgoing_edges|b|k", 1, time.Minute)

	c.invalidatePrefix("store|outgoing_edges|a|")
	_, ok := c.get("store|outgoing_edges|a|k")
	assert.False(t, ok)
	_, ok = c.get("store|outgoing_edges|b|k")
	assert.True(t, ok)
}
