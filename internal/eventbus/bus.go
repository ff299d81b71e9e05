// Package eventbus routes change events from a store's writer to live
// subscribers, with optional NATS JetStream forwarding for persistence
// and distributed consumption, per spec.md §4.4.
package eventbus

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/nats-io/nats.go"

	"github.com/steveyegge/graphstore/internal/idgen"
)

// subscription pairs a parsed topic pattern and delivery options with a
// per-subscriber outbound queue. Each subscription owns one goroutine
// draining its queue, which is what gives it in-order, non-blocking
// delivery without serializing against the other subscribers.
type subscription struct {
	id       string
	topic    Topic
	opts     SubscribeOptions
	sub      Subscriber
	queue    chan *Event
	done     chan struct{}
	detached int32 // set via atomic when detach removes a panicking subscriber
}

// Bus dispatches events to matching subscriptions and optionally forwards
// them to NATS JetStream for persistence.
type Bus struct {
	mu   sync.RWMutex
	subs map[string]*subscription
	js   nats.JetStreamContext

	queueDepth int
}

// New creates an empty event bus. queueDepth bounds each subscriber's
// outbound buffer; when a buffer is full, Publish drops the new event for
// that subscriber rather than block, matching spec.md §4.4's
// "failed deliveries may be dropped".
func New(queueDepth int) *Bus {
	if queueDepth <= 0 {
		queueDepth = 256
	}
	return &Bus{subs: make(map[string]*subscription), queueDepth: queueDepth}
}

// SetJetStream attaches a JetStream context for event forwarding. When
// set, Publish also writes every event to JetStream after local fanout.
func (b *Bus) SetJetStream(js nats.JetStreamContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.js = js
}

// JetStreamEnabled reports whether JetStream forwarding is configured.
func (b *Bus) JetStreamEnabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.js != nil
}

// Subscribe registers sub to receive events matching topic and opts,
// returning the subscription id used to Unsubscribe later.
func (b *Bus) Subscribe(topic Topic, opts SubscribeOptions, sub Subscriber) string {
	s := &subscription{
		id:    idgen.NewPrefixed("sub"),
		topic: topic,
		opts:  opts,
		sub:   sub,
		queue: make(chan *Event, b.queueDepth),
		done:  make(chan struct{}),
	}

	b.mu.Lock()
	b.subs[s.id] = s
	b.mu.Unlock()

	go b.drain(s)
	return s.id
}

// Unsubscribe removes a subscription by id and reports whether it
// existed. This package has no not-found sentinel of its own, so an
// unknown id is reported as false; graphstore.Unsubscribe passes that
// bool through unchanged.
func (b *Bus) Unsubscribe(id string) bool {
	b.mu.Lock()
	s, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()
	if ok {
		close(s.done)
	}
	return ok
}

// detach is called by drain when it detects the subscriber is
// unreachable (Deliver panicked). It removes the subscription so no
// further delivery attempts are made, per spec.md §4.4's unsubscribe
// contract.
func (b *Bus) detach(id string) {
	b.mu.Lock()
	s, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()
	if ok {
		atomic.StoreInt32(&s.detached, 1)
	}
}

// drain delivers queued events to one subscription's Deliver in order,
// until Unsubscribe closes done.
func (b *Bus) drain(s *subscription) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("eventbus: subscriber %s panicked, detaching: %v", s.id, r)
			b.detach(s.id)
		}
	}()
	for {
		select {
		case <-s.done:
			return
		case e := <-s.queue:
			s.sub.Deliver(e)
		}
	}
}

// Publish fans e out to every matching subscription and, if configured,
// forwards it to JetStream. Fanout is asynchronous: Publish only enqueues
// (or drops, on a full queue) and never blocks on a slow subscriber.
func (b *Bus) Publish(e *Event) {
	if e == nil {
		return
	}

	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.opts.allowsKind(EventKind(e.Kind)) && s.topic.Matches(e) && s.opts.matchesFilter(e) {
			matched = append(matched, s)
		}
	}
	js := b.js
	b.mu.RUnlock()

	for _, s := range matched {
		select {
		case s.queue <- e:
		default:
			log.Printf("eventbus: subscriber %s queue full, dropping event %s", s.id, e.ID)
		}
	}

	if js != nil {
		b.publishToJetStream(js, e)
	}
}

// publishToJetStream forwards e to a JetStream subject derived from its
// topic. Errors are logged but never propagated: JetStream is
// supplementary to local dispatch, not a prerequisite.
func (b *Bus) publishToJetStream(js nats.JetStreamContext, e *Event) {
	subject := fmt.Sprintf("graphstore.%s.%s", e.EntityKind, e.Kind)
	data, err := json.Marshal(wireEvent{
		ID:         e.ID,
		Kind:       string(e.Kind),
		Topic:      e.Topic,
		EntityKind: string(e.EntityKind),
		EntityID:   e.EntityID,
		Data:       e.Data,
		Metadata:   e.Metadata,
		Timestamp:  e.Timestamp.UnixMilli(),
	})
	if err != nil {
		log.Printf("eventbus: failed to marshal event %s for JetStream: %v", e.ID, err)
		return
	}
	ack, err := js.Publish(subject, data)
	if err != nil {
		log.Printf("eventbus: JetStream publish to %s failed: %v", subject, err)
		return
	}
	log.Printf("eventbus: JetStream published to %s (stream=%s seq=%d)", subject, ack.Stream, ack.Sequence)
}

// wireEvent is the JSON shape published to JetStream, matching spec.md
// §4.4's event-shape table (timestamp as ms since epoch).
type wireEvent struct {
	ID         string                 `json:"id"`
	Kind       string                 `json:"kind"`
	Topic      string                 `json:"topic"`
	EntityKind string                 `json:"entity_kind"`
	EntityID   string                 `json:"entity_id,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  int64                  `json:"timestamp"`
}

// SubscriptionCount reports the number of live subscriptions, for
// introspection.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
