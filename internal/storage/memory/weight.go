package memory

import "github.com/steveyegge/graphstore/internal/types"

// weightOptions bundles the weight-extraction convention shared by
// Dijkstra and Kruskal MST (spec.md §4.3.2/§4.3.5), resolving Open
// Question 3 (see SPEC_FULL.md §13): weight always comes from the edge's
// Data map under weightProperty, defaulting when absent or non-numeric.
type weightOptions struct {
	property    string
	defaultW    float64
	preferLower bool
}

// extract returns e's weight per opts, falling back to defaultW when the
// data map has no entry, or the entry isn't numeric.
func (o weightOptions) extract(e types.Edge) float64 {
	if e.Data == nil {
		return o.defaultW
	}
	v, ok := e.Data[o.property]
	if !ok {
		return o.defaultW
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return o.defaultW
	}
}

// selectionWeight returns the weight used for priority-queue ordering:
// the raw weight when preferLower is true, or its inverse (1/w, guarded
// against non-positive values) when the caller wants to favor heavier
// edges, per spec.md §4.3.2's inversion note.
func (o weightOptions) selectionWeight(e types.Edge) float64 {
	w := o.extract(e)
	if o.preferLower {
		return w
	}
	if w <= 0 {
		return 0
	}
	return 1.0 / w
}
