package eventbus

import (
	"time"

	"github.com/steveyegge/graphstore/internal/types"
)

// EventKind is the mutation kind carried on an Event, per spec.md §4.4's
// event shape.
type EventKind string

const (
	EventCreate EventKind = "create"
	EventUpdate EventKind = "update"
	EventDelete EventKind = "delete"
	EventCustom EventKind = "custom"
)

// Event is a single change notification routed through the Bus.
type Event struct {
	ID         string
	Kind       EventKind
	Topic      string
	EntityKind types.EntityKind
	EntityID   string                 // empty for entity-less custom events
	Data       map[string]interface{} // nullable
	Metadata   map[string]interface{} // nullable; event-level metadata, not the entity's stored Metadata
	Timestamp  time.Time
}

// TopicForm distinguishes the five topic shapes spec.md §4.4 recognizes.
type TopicForm int

const (
	TopicAny TopicForm = iota
	TopicKind
	TopicKindID
	TopicKindTypeID
	TopicFreeform
)

// Topic is a parsed subscription pattern. Construct one with the
// TopicX helper constructors rather than the struct literal.
type Topic struct {
	Form     TopicForm
	Kind     types.EntityKind
	TypeTag  string
	EntityID string
	Literal  string
}

func TopicAnyPattern() Topic { return Topic{Form: TopicAny} }

func TopicKindPattern(kind types.EntityKind) Topic {
	return Topic{Form: TopicKind, Kind: kind}
}

func TopicKindIDPattern(kind types.EntityKind, id string) Topic {
	return Topic{Form: TopicKindID, Kind: kind, EntityID: id}
}

func TopicKindTypeIDPattern(kind types.EntityKind, typeTag, id string) Topic {
	return Topic{Form: TopicKindTypeID, Kind: kind, TypeTag: typeTag, EntityID: id}
}

func TopicLiteral(s string) Topic {
	return Topic{Form: TopicFreeform, Literal: s}
}

// Matches reports whether e's topic/entity fields satisfy pattern t, per
// spec.md §4.4's topic forms.
func (t Topic) Matches(e *Event) bool {
	switch t.Form {
	case TopicAny:
		return true
	case TopicKind:
		return e.EntityKind == t.Kind
	case TopicKindID:
		return e.EntityKind == t.Kind && e.EntityID == t.EntityID
	case TopicKindTypeID:
		if e.EntityKind != t.Kind || e.EntityID != t.EntityID {
			return false
		}
		tag, _ := e.Metadata["type"].(string)
		return tag == t.TypeTag
	case TopicFreeform:
		return e.Topic == t.Literal
	default:
		return false
	}
}

// SubscribeOptions carries the `events`/`filter` option bag spec.md §4.4
// attaches to a subscription.
type SubscribeOptions struct {
	// Events restricts delivery to these kinds; nil/empty means all kinds.
	Events []EventKind
	// Filter holds additional predicates over event fields. Reserved keys
	// "entity_type" and "entity_id" compare their namesakes; any other
	// key compares against e.Metadata[key].
	Filter map[string]types.Predicate
}

func (o SubscribeOptions) allowsKind(k EventKind) bool {
	if len(o.Events) == 0 {
		return true
	}
	for _, allowed := range o.Events {
		if allowed == k {
			return true
		}
	}
	return false
}

func (o SubscribeOptions) matchesFilter(e *Event) bool {
	for key, pred := range o.Filter {
		switch key {
		case "entity_type":
			if !pred.Match(string(e.EntityKind)) {
				return false
			}
		case "entity_id":
			if !pred.Match(e.EntityID) {
				return false
			}
		default:
			v, ok := e.Metadata[key]
			if !ok || !pred.Match(v) {
				return false
			}
		}
	}
	return true
}

// Subscriber receives matched events. Deliver must not block the bus's
// dispatch loop for long; subscribers needing slow work should queue it
// themselves.
type Subscriber interface {
	Deliver(e *Event)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(e *Event)

func (f SubscriberFunc) Deliver(e *Event) { f(e) }
