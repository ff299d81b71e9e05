package eventbus_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/types"
)

type recordingSubscriber struct {
	mu     sync.Mutex
	events []*eventbus.Event
}

func (r *recordingSubscriber) Deliver(e *eventbus.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSubscriber) snapshot() []*eventbus.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*eventbus.Event, len(r.events))
	copy(out, r.events)
	return out
}

func waitFor(t *testing.T, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestTopicKindIDMatchesOnlyThatEntity(t *testing.T) {
	bus := eventbus.New(16)
	sub := &recordingSubscriber{}
	bus.Subscribe(eventbus.TopicKindIDPattern(types.KindNode, "x"), eventbus.SubscribeOptions{}, sub)

	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindNode, EntityID: "x"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventUpdate, EntityKind: types.KindNode, EntityID: "x"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventDelete, EntityKind: types.KindNode, EntityID: "x"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindNode, EntityID: "y"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindEdge, EntityID: "x"})

	waitFor(t, func() bool { return len(sub.snapshot()) == 3 })
	events := sub.snapshot()
	assert.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "x", e.EntityID)
		assert.Equal(t, types.KindNode, e.EntityKind)
	}
}

func TestEventsForOneIDArriveInWriteOrder(t *testing.T) {
	bus := eventbus.New(16)
	sub := &recordingSubscriber{}
	bus.Subscribe(eventbus.TopicAnyPattern(), eventbus.SubscribeOptions{}, sub)

	kinds := []eventbus.EventKind{eventbus.EventCreate, eventbus.EventUpdate, eventbus.EventUpdate, eventbus.EventDelete}
	for _, k := range kinds {
		bus.Publish(&eventbus.Event{Kind: k, EntityKind: types.KindNode, EntityID: "x"})
	}

	waitFor(t, func() bool { return len(sub.snapshot()) == len(kinds) })
	events := sub.snapshot()
	for i, e := range events {
		assert.Equal(t, kinds[i], e.Kind)
	}
}

func TestEventsRestrictedByAllowedKinds(t *testing.T) {
	bus := eventbus.New(16)
	sub := &recordingSubscriber{}
	bus.Subscribe(eventbus.TopicKindPattern(types.KindEdge), eventbus.SubscribeOptions{
		Events: []eventbus.EventKind{eventbus.EventCreate, eventbus.EventDelete},
	}, sub)

	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindEdge, EntityID: "e1"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventUpdate, EntityKind: types.KindEdge, EntityID: "e1"})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventDelete, EntityKind: types.KindEdge, EntityID: "e1"})

	waitFor(t, func() bool { return len(sub.snapshot()) == 2 })
	for _, e := range sub.snapshot() {
		assert.NotEqual(t, eventbus.EventUpdate, e.Kind)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := eventbus.New(16)
	sub := &recordingSubscriber{}
	id := bus.Subscribe(eventbus.TopicAnyPattern(), eventbus.SubscribeOptions{}, sub)

	require.True(t, bus.Unsubscribe(id))
	assert.False(t, bus.Unsubscribe(id))

	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindNode, EntityID: "x"})
	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, sub.snapshot())
}

func TestFilterMatchesMetadataKey(t *testing.T) {
	bus := eventbus.New(16)
	sub := &recordingSubscriber{}
	bus.Subscribe(eventbus.TopicAnyPattern(), eventbus.SubscribeOptions{
		Filter: map[string]types.Predicate{"type": types.Literal("person")},
	}, sub)

	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindNode, EntityID: "x",
		Metadata: map[string]interface{}{"type": "person"}})
	bus.Publish(&eventbus.Event{Kind: eventbus.EventCreate, EntityKind: types.KindNode, EntityID: "y",
		Metadata: map[string]interface{}{"type": "org"}})

	waitFor(t, func() bool { return len(sub.snapshot()) == 1 })
	assert.Equal(t, "x", sub.snapshot()[0].EntityID)
}
