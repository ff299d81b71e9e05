package types

import "reflect"

// Predicate is either a literal value (equality match) or a single-argument
// boolean function, per spec.md §4.1 "Filter language". Tagging the two
// shapes as a closed pair (instead of letting any interface{} flow through
// untagged) is the re-architecture spec.md §9 calls for.
type Predicate struct {
	literal   interface{}
	isLiteral bool
	fn        func(interface{}) bool
}

// Literal builds an equality predicate.
func Literal(value interface{}) Predicate {
	return Predicate{literal: value, isLiteral: true}
}

// Func builds a predicate-function match.
func Func(fn func(interface{}) bool) Predicate {
	return Predicate{fn: fn}
}

// Match evaluates the predicate against a candidate value.
func (p Predicate) Match(value interface{}) bool {
	if p.isLiteral {
		return valuesEqual(p.literal, value)
	}
	if p.fn != nil {
		return p.fn(value)
	}
	return false
}

func valuesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == b
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if ta := reflect.TypeOf(a); ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Filter is a mapping key -> predicate. The reserved keys "metadata" and
// "data" apply their predicate to the whole metadata or data map (a
// Literal never equals a map, so only a Func can match there); single
// entries of those maps are matched with dotted keys such as "data.name"
// or "metadata.deleted". An empty filter matches every non-deleted record
// (spec.md §4.1).
type Filter map[string]Predicate

// MatchRecord evaluates a filter against a flattened view of a record: its
// top-level scalar fields, plus "metadata.<key>" and "data.<key>" dotted
// paths into its two sub-maps.
func (f Filter) MatchRecord(fields map[string]interface{}, metadata, data map[string]interface{}) bool {
	for key, pred := range f {
		switch key {
		case "metadata":
			if !matchSubMap(pred, metadata) {
				return false
			}
		case "data":
			if !matchSubMap(pred, data) {
				return false
			}
		default:
			v, ok := fields[key]
			if !ok {
				// Allow dotted metadata.<k> / data.<k> access too.
				if sv, found := lookupDotted(key, metadata, data); found {
					if !pred.Match(sv) {
						return false
					}
					continue
				}
				return false
			}
			if !pred.Match(v) {
				return false
			}
		}
	}
	return true
}

func matchSubMap(pred Predicate, m map[string]interface{}) bool {
	return pred.Match(m)
}

func lookupDotted(key string, metadata, data map[string]interface{}) (interface{}, bool) {
	const mPrefix = "metadata."
	const dPrefix = "data."
	if len(key) > len(mPrefix) && key[:len(mPrefix)] == mPrefix {
		v, ok := metadata[key[len(mPrefix):]]
		return v, ok
	}
	if len(key) > len(dPrefix) && key[:len(dPrefix)] == dPrefix {
		v, ok := data[key[len(dPrefix):]]
		return v, ok
	}
	return nil, false
}
