// Package memory implements the in-memory storage adapter: the seven
// tables (graphs, nodes, edges, by_source, by_target, by_type,
// by_source_type) and every operation layered on top of them, per
// spec.md §4.1-§4.3.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/steveyegge/graphstore/internal/config"
	"github.com/steveyegge/graphstore/internal/eventbus"
	"github.com/steveyegge/graphstore/internal/types"
)

var (
	tracer trace.Tracer = otel.Tracer("github.com/steveyegge/graphstore/internal/storage/memory")
	meter  metric.Meter  = otel.Meter("github.com/steveyegge/graphstore/internal/storage/memory")
)

// instruments bundles the store's metric handles, created once per Store
// so every operation records against the same set.
type instruments struct {
	ops       metric.Int64Counter
	opLatency metric.Float64Histogram
	cacheHits metric.Int64Counter
	cacheMiss metric.Int64Counter
}

func newInstruments() instruments {
	ops, _ := meter.Int64Counter("graphstore.storage.operations",
		metric.WithDescription("count of storage adapter operations by name and outcome"))
	lat, _ := meter.Float64Histogram("graphstore.storage.operation_latency_ms",
		metric.WithDescription("storage adapter operation latency in milliseconds"))
	hits, _ := meter.Int64Counter("graphstore.storage.cache_hits")
	miss, _ := meter.Int64Counter("graphstore.storage.cache_misses")
	return instruments{ops: ops, opLatency: lat, cacheHits: hits, cacheMiss: miss}
}

// edgeRow is the primary-table row for an edge, unwrapped from
// types.Edge so index maintenance can read Source/Target/Type without a
// type assertion on every lookup.
type edgeRow struct {
	edge types.Edge
}

// Store is one named in-memory graph store instance. It owns the primary
// tables, the four edge indices, the result cache, the Dijkstra path
// cache, and a Bus for change notification.
//
// Concurrency discipline (spec.md §4.1): a single writer per store.
// Writes take wmu; reads take the read lock of mu, the one RWMutex shared
// by all tables. This
// matches the "single writer queue per store, readers lock-free over
// stable snapshots" option the spec calls out as sufficient.
type Store struct {
	name string
	opts config.StartOptions

	wmu sync.Mutex // serializes all mutating operations

	mu       sync.RWMutex
	graphs   map[string]types.Graph
	nodes    map[string]types.Node
	edges    map[string]edgeRow
	bySource map[string][]string    // node id -> edge ids where it is source
	byTarget map[string][]string    // node id -> edge ids where it is target
	byType   map[string][]string    // edge type -> edge ids
	byST     map[[2]string][]string  // (source, type) -> edge ids
	schemas  map[string]types.Schema // subtype name -> schema

	cache     *resultCache
	pathCache *pathCache

	bus *eventbus.Bus

	inst instruments

	closed bool
}

// New constructs a Store named name with opts, wiring up its caches and
// subscription bus.
func New(name string, opts config.StartOptions) *Store {
	return &Store{
		name:      name,
		opts:      opts,
		graphs:    make(map[string]types.Graph),
		nodes:     make(map[string]types.Node),
		edges:     make(map[string]edgeRow),
		bySource:  make(map[string][]string),
		byTarget:  make(map[string][]string),
		byType:    make(map[string][]string),
		byST:      make(map[[2]string][]string),
		schemas:   make(map[string]types.Schema),
		cache:     newResultCache(opts.CacheMaxSize, opts.CacheTTL),
		pathCache: newPathCache(opts.PathCacheMaxSize, opts.PathCacheTTL),
		bus:       eventbus.New(256),
		inst:      newInstruments(),
	}
}

func (s *Store) Name() string        { return s.name }
func (s *Store) AdapterKind() string { return "memory" }

// Bus exposes the store's event bus so callers can Subscribe/Unsubscribe.
func (s *Store) Bus() *eventbus.Bus { return s.bus }

// Close marks the store closed. It does not clear the tables, indices or
// caches and does not cancel bus subscriptions; no other method checks
// the closed flag.
func (s *Store) Close() {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	s.closed = true
}

// withSpan starts a span for op and returns it plus a context carrying it
// along with a stop function that records latency and ends the span.
func (s *Store) withSpan(ctx context.Context, op string) (context.Context, func(err *error)) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "memory.Store."+op)
	return ctx, func(errp *error) {
		outcome := "ok"
		if errp != nil && *errp != nil {
			outcome = "error"
		}
		s.inst.ops.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op), attribute.String("outcome", outcome)))
		s.inst.opLatency.Record(ctx, float64(time.Since(start).Milliseconds()), metric.WithAttributes())
		span.End()
	}
}

// stampCreate returns fresh Metadata for a newly inserted record.
func stampCreate(kind types.EntityKind, module string) types.Metadata {
	now := time.Now().UTC()
	return types.Metadata{
		Entity:    kind,
		Module:    module,
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
		Deleted:   false,
	}
}

// stampUpdate bumps prior by exactly one version and refreshes UpdatedAt.
func stampUpdate(prior types.Metadata) types.Metadata {
	next := prior
	next.UpdatedAt = time.Now().UTC()
	next.Version = prior.Version + 1
	return next
}

// stampDelete marks prior deleted without touching Version, per spec.md
// invariant 4 ("Deletes do not increment version").
func stampDelete(prior types.Metadata) types.Metadata {
	next := prior
	now := time.Now().UTC()
	next.DeletedAt = &now
	next.UpdatedAt = now
	next.Deleted = true
	return next
}

// sortedEdgeIDs returns a copy of ids sorted ascending. It has no callers:
// BFS orders neighbors with sortNeighborsByID, and All sorts with
// sort.Slice in list.go.
func sortedEdgeIDs(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	sort.Strings(out)
	return out
}
