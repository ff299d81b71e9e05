// Package graphstore provides a minimal public API for starting and
// using the graph store engine: a concurrent, schema-typed in-memory
// adjacency store with secondary indices, a query/result cache, a suite
// of graph algorithms, and a subscription bus for change notification.
//
// Most callers only need Start, the storage.Storage interface it
// returns, and the re-exported core types below.
package graphstore

import (
	"github.com/steveyegge/graphstore/internal/config"
	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/registry"
	"github.com/steveyegge/graphstore/internal/storage"
	"github.com/steveyegge/graphstore/internal/storage/memory"
	"github.com/steveyegge/graphstore/internal/types"
)

// Core entity types for working with a graph store.
type (
	Graph       = types.Graph
	Node        = types.Node
	Edge        = types.Edge
	Metadata    = types.Metadata
	EntityKind  = types.EntityKind
	Schema      = types.Schema
	FieldSchema = types.FieldSchema
	EdgeBinding = types.EdgeBinding
	Filter      = types.Filter
	Predicate   = types.Predicate
)

// EntityKind constants.
const (
	KindGraph = types.KindGraph
	KindNode  = types.KindNode
	KindEdge  = types.KindEdge
)

// Sentinel errors, re-exported so callers can errors.Is against them
// without importing internal/types directly.
var (
	ErrNotFound             = types.ErrNotFound
	ErrDeleted              = types.ErrDeleted
	ErrModuleMismatch       = types.ErrModuleMismatch
	ErrIDAlreadyExists      = types.ErrIDAlreadyExists
	ErrSchemaViolation      = types.ErrSchemaViolation
	ErrInvalidParams        = types.ErrInvalidParams
	ErrUnsupportedAlgorithm = types.ErrUnsupportedAlgorithm
	ErrNoPathExists         = types.ErrNoPathExists
	ErrTimeout              = types.ErrTimeout
)

// Storage is the adapter interface every store implements: insert,
// update, delete, get, all, traverse, plus schema registration.
type Storage = storage.Storage

// ListOptions carries All's sort/offset/limit parameters.
type ListOptions = storage.ListOptions

// StartOptions configures a new store. Use config.Defaults(name) plus
// field overrides, or config.Load to layer environment/file config.
type StartOptions = config.StartOptions

// Literal and Func build filter predicates.
func Literal(value interface{}) Predicate     { return types.Literal(value) }
func Func(fn func(interface{}) bool) Predicate { return types.Func(fn) }

// DefaultOptions returns the spec-mandated defaults for a store named
// name.
func DefaultOptions(name string) StartOptions {
	return config.Defaults(name)
}

// Start creates a new in-memory store, registers it in the default
// process-wide registry under opts.Name, and returns its Storage handle.
// It fails if opts.Name is already registered.
func Start(opts StartOptions) (Storage, error) {
	return StartIn(registry.Default, opts)
}

// StartIn is Start against an explicit registry, for callers (tests,
// multi-tenant hosts) that need isolation from the process-wide default.
func StartIn(reg *registry.Registry, opts StartOptions) (Storage, error) {
	store := memory.New(opts.Name, opts)
	if err := reg.Register(opts.Name, store); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// Stop closes the store named name and unregisters it from the default
// registry.
func Stop(name string) {
	StopIn(registry.Default, name)
}

// StopIn is Stop against an explicit registry.
func StopIn(reg *registry.Registry, name string) {
	if h, _, ok := reg.Lookup(name); ok {
		h.Close()
		reg.Unregister(name)
	}
}

// Lookup resolves a store name to its handle via the default registry.
func Lookup(name string) (Storage, bool) {
	h, _, ok := registry.Default.Lookup(name)
	if !ok {
		return nil, false
	}
	return h.(Storage), true
}

// Subscribe registers sub on store's event bus for events matching topic
// and opts. store must be a *memory.Store-backed handle (the only
// adapter kind today).
func Subscribe(store Storage, topic eventbus.Topic, opts eventbus.SubscribeOptions, sub eventbus.Subscriber) (string, bool) {
	ms, ok := store.(*memory.Store)
	if !ok {
		return "", false
	}
	return ms.Bus().Subscribe(topic, opts, sub), true
}

// Unsubscribe removes a subscription created with Subscribe.
func Unsubscribe(store Storage, id string) bool {
	ms, ok := store.(*memory.Store)
	if !ok {
		return false
	}
	return ms.Bus().Unsubscribe(id)
}

// Re-exported topic constructors and event/subscriber types, so callers
// don't need to import internal/eventbus for common usage.
type (
	Topic            = eventbus.Topic
	SubscribeOptions = eventbus.SubscribeOptions
	Event            = eventbus.Event
	EventKind        = eventbus.EventKind
	Subscriber       = eventbus.Subscriber
)

var (
	TopicAny       = eventbus.TopicAnyPattern
	TopicKind      = eventbus.TopicKindPattern
	TopicKindID    = eventbus.TopicKindIDPattern
	TopicTypeID    = eventbus.TopicKindTypeIDPattern
	TopicLiteral   = eventbus.TopicLiteral
	SubscriberFunc = eventbus.SubscriberFunc
)

const (
	EventCreate = eventbus.EventCreate
	EventUpdate = eventbus.EventUpdate
	EventDelete = eventbus.EventDelete
	EventCustom = eventbus.EventCustom
)
