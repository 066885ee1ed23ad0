package schema

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"

	"xmlbind/binding"
	"xmlbind/internal/assign"
	"xmlbind/xmlnode"
)

// Record is an instance of a schema type: field values keyed by accessor.
// A Record is not safe for concurrent use.
type Record struct {
	typ    *Type
	values map[string]any
	refs   map[string]*binding.Reference
	frozen bool
}

var (
	_ binding.NodeMarshaler = (*Record)(nil)
	_ binding.Freezer       = (*Record)(nil)
	_ assign.Assigner       = (*Record)(nil)
	_ assign.FieldGetter    = (*Record)(nil)
	_ yaml.Marshaler        = (*Record)(nil)
)

// Type returns the record's schema type.
func (r *Record) Type() *Type { return r.typ }

// Accessors returns the accessors holding a value, in field order.
func (r *Record) Accessors() []string {
	var out []string

	for _, d := range r.typ.Fields {
		if _, ok := r.values[d.Accessor]; ok {
			out = append(out, d.Accessor)
		}
	}

	return out
}

// Field returns the value stored under accessor name.
func (r *Record) Field(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// SetField stores v under a declared accessor.
func (r *Record) SetField(name string, v any) error {
	if r.frozen {
		return fmt.Errorf("%s.%s: %w", r.typ.Name, name, binding.ErrFrozen)
	}

	if r.typ.field(name) == nil {
		return fmt.Errorf("%s has no field %q", r.typ.Name, name)
	}

	r.values[name] = v

	return nil
}

// Freeze makes the record and every value in it read-only.
func (r *Record) Freeze() {
	if r.frozen {
		return
	}

	r.frozen = true

	for k, v := range r.values {
		r.values[k] = binding.Freeze(v)
	}
}

// Frozen reports whether Freeze was called.
func (r *Record) Frozen() bool { return r.frozen }

// AssignTo stores the record into dst field by field.
func (r *Record) AssignTo(dst reflect.Value) error {
	return assign.Value(dst, entries{r})
}

// MarshalXMLNode encodes the record as an element named by ctx.
func (r *Record) MarshalXMLNode(ctx binding.EncodeContext) (*xmlnode.Node, error) {
	return r.typ.EncodeAs(r, ctx)
}

// MarshalYAML emits the non-nil fields as a mapping in field order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, name := range r.Accessors() {
		v := r.values[name]
		if v == nil {
			continue
		}

		var vn yaml.Node
		if err := vn.Encode(v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}, &vn)
	}

	return node, nil
}

// entries is the record seen as a plain ordered mapping.
type entries struct{ r *Record }

func (e entries) Keys() []any {
	names := e.r.Accessors()

	out := make([]any, len(names))
	for i, name := range names {
		out[i] = name
	}

	return out
}

func (e entries) Get(k any) (any, bool) {
	name, ok := k.(string)
	if !ok {
		return nil, false
	}

	return e.r.Field(name)
}
