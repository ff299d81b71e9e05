// Package types defines the core entity model for the graph store: Graph,
// Node, and Edge records, their shared Metadata, and the schema descriptors
// user-defined entity subtypes register against.
package types

import "time"

// EntityKind identifies which of the three built-in record families a
// stored entity belongs to. User-defined subtypes declare which kind they
// extend; they never introduce a fourth kind.
type EntityKind string

const (
	KindGraph EntityKind = "graph"
	KindNode  EntityKind = "node"
	KindEdge  EntityKind = "edge"

	// KindTransaction and KindAny are not stored entity kinds; they are
	// subscription/event-only markers (see internal/eventbus).
	KindTransaction EntityKind = "transaction"
	KindAny         EntityKind = "any"
)

// Metadata is the bookkeeping block stamped onto every stored entity by the
// storage adapter. Callers never hand-construct it for writes.
type Metadata struct {
	Entity    EntityKind `json:"entity"`
	Module    string     `json:"module"` // originating subtype tag, "" for built-ins
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	Version   int64      `json:"version"`
	Deleted   bool       `json:"deleted"`
}

// Graph is a logical container grouping entities (a "policy", a
// "codebase", etc.).
type Graph struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Metadata Metadata               `json:"metadata"`
}

// Node is a vertex in the graph.
type Node struct {
	ID       string                 `json:"id"`
	GraphID  string                 `json:"graph_id,omitempty"`
	Type     string                 `json:"type,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Metadata Metadata               `json:"metadata"`
}

// Edge is a directed connection between two nodes.
type Edge struct {
	ID       string                 `json:"id"`
	Source   string                 `json:"source"`
	Target   string                 `json:"target"`
	Type     string                 `json:"type,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Metadata Metadata               `json:"metadata"`
}

// FieldType enumerates the scalar kinds a schema field may declare.
type FieldType string

const (
	FieldString FieldType = "string"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldBool   FieldType = "bool"
	FieldAny    FieldType = "any"
)

// FieldSchema describes a single data-map field of a user-defined subtype.
type FieldSchema struct {
	Name     string
	Type     FieldType
	Required bool
}

// EdgeBinding constrains which node subtypes an edge subtype may connect.
// Empty slices mean "no constraint".
type EdgeBinding struct {
	AllowedSourceTypes []string
	AllowedTargetTypes []string
}

// Schema is the descriptor a user-defined entity subtype registers.
// It is plain data: a Name tag, the Kind it extends, its Fields and an
// optional Binding. Nothing dispatches on a subtype dynamically — the
// adapter only ever compares the Name tag stamped in Metadata.Module.
type Schema struct {
	Name    string
	Kind    EntityKind
	Fields  []FieldSchema
	Binding *EdgeBinding // only meaningful when Kind == KindEdge
}

// Validate checks data against the schema's required fields and declared
// types. Unknown fields are permitted (the data map is open, per spec.md
// §9's "heterogeneous record is a map" note — typed at the schema
// boundary, not closed at the map).
func (s Schema) Validate(data map[string]interface{}) error {
	for _, f := range s.Fields {
		v, ok := data[f.Name]
		if !ok || v == nil {
			if f.Required {
				return NewSchemaViolation(s.Name, f.Name, "required field missing")
			}
			continue
		}
		if !fieldTypeMatches(f.Type, v) {
			return NewSchemaViolation(s.Name, f.Name, "value does not match declared type "+string(f.Type))
		}
	}
	return nil
}

func fieldTypeMatches(t FieldType, v interface{}) bool {
	switch t {
	case FieldAny, "":
		return true
	case FieldString:
		_, ok := v.(string)
		return ok
	case FieldBool:
		_, ok := v.(bool)
		return ok
	case FieldInt:
		switch v.(type) {
		case int, int32, int64:
			return true
		default:
			return false
		}
	case FieldFloat:
		switch v.(type) {
		case float32, float64, int, int64:
			return true
		default:
			return false
		}
	default:
		return true
	}
}
