package schema

import (
	"fmt"
	"reflect"
	"sort"

	"xmlbind/binding"
	"xmlbind/internal/assign"
	"xmlbind/xmlnode"
)

// Type is a compiled binding class: its configuration and one descriptor
// per field.
type Type struct {
	Name   string
	Tag    string
	Config binding.Config
	Fields []*binding.Descriptor
}

func (t *Type) newRecord() *Record {
	return &Record{
		typ:    t,
		values: make(map[string]any, len(t.Fields)),
		refs:   make(map[string]*binding.Reference, len(t.Fields)),
	}
}

func (t *Type) field(accessor string) *binding.Descriptor {
	for _, d := range t.Fields {
		if d.Accessor == accessor {
			return d
		}
	}

	return nil
}

// Decode reads a record out of input: a node, an etree element or
// document, or raw XML. Fields are looked up under the input's root.
func (t *Type) Decode(input any) (*Record, error) {
	n, err := xmlnode.From(input)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", t.Name, err)
	}

	rec := t.newRecord()

	for _, d := range t.Fields {
		ref, err := binding.NewReference(d, t.Config, rec)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.Name, err)
		}

		v, err := ref.ValueIn(n)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", t.Name, err)
		}

		rec.values[d.Accessor] = v
		rec.refs[d.Accessor] = ref
	}

	return rec, nil
}

// DecodeInto decodes input and stores the record into dst, a non-nil
// pointer to a struct, a map keyed by strings or a *Record.
func (t *Type) DecodeInto(input any, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode %s: %w: %T", t.Name, assign.ErrNotSettable, dst)
	}

	rec, err := t.Decode(input)
	if err != nil {
		return err
	}

	if err := assign.Value(rv.Elem(), rec); err != nil {
		return fmt.Errorf("decode %s: %w", t.Name, err)
	}

	return nil
}

// Bind wraps src, a struct, a map or a Record of another type, into a
// Record of t holding the fields t declares. A Record of t is returned as
// is.
func (t *Type) Bind(src any) *Record {
	if rec, ok := src.(*Record); ok && rec.typ == t {
		return rec
	}

	rec := t.newRecord()

	for _, d := range t.Fields {
		if v, ok := assign.Get(src, d.Accessor); ok {
			rec.values[d.Accessor] = v
		}
	}

	return rec
}

// Encode writes src into a new root element named after the type's tag and
// declares the schema namespaces on it.
func (t *Type) Encode(src any) (*xmlnode.Node, error) {
	prefix := t.Config.Namespace
	if prefix == "*" || prefix == xmlnode.DefaultPrefix {
		prefix = ""
	}

	n, err := t.EncodeAs(src, binding.EncodeContext{Name: t.Tag, Namespace: prefix})
	if err != nil {
		return nil, err
	}

	prefixes := make([]string, 0, len(t.Config.Namespaces))
	for p := range t.Config.Namespaces {
		prefixes = append(prefixes, p)
	}

	sort.Strings(prefixes)

	for _, p := range prefixes {
		xmlnode.DeclareNamespace(n, p, t.Config.Namespaces[p])
	}

	return n, nil
}

// EncodeAs writes src into a new element named by ctx. A Record decoded
// earlier reuses its references, so fields read through an auto-wrapper
// are written through it again.
func (t *Type) EncodeAs(src any, ctx binding.EncodeContext) (*xmlnode.Node, error) {
	name := ctx.Name
	if ctx.Namespace != "" {
		name = ctx.Namespace + ":" + name
	}

	n := xmlnode.NewElement(name)
	rec, _ := src.(*Record)

	for _, d := range t.Fields {
		// namespace bindings are read-only
		if d.Kind == binding.KindNamespace {
			continue
		}

		var ref *binding.Reference
		if rec != nil {
			ref = rec.refs[d.Accessor]
		}

		if ref == nil {
			var err error
			if ref, err = binding.NewReference(d, t.Config, src); err != nil {
				return nil, fmt.Errorf("encode %s: %w", t.Name, err)
			}
		}

		v, err := ref.ToXML(src)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.Name, err)
		}

		if empty(v) {
			continue
		}

		if _, err := ref.UpdateXML(n, v); err != nil {
			return nil, fmt.Errorf("encode %s: %w", t.Name, err)
		}
	}

	return n, nil
}

// empty reports nil values and containers without entries, which encode to
// nothing rather than to a bare wrapper.
func empty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return false
	case assign.Sequence:
		return len(x.Items()) == 0
	case assign.Mapping:
		return len(x.Keys()) == 0
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr:
		return rv.IsNil()
	default:
		return false
	}
}
