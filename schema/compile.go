package schema

import (
	"fmt"
	"reflect"
	"slices"
	"time"

	"go.uber.org/zap"

	"xmlbind/binding"
	"xmlbind/naming"
	"xmlbind/xmlnode"
)

// PrimitiveTypes are the non-schema types an object field may name in as.
var PrimitiveTypes = map[string]reflect.Type{
	"string":   reflect.TypeOf(""),
	"int":      reflect.TypeOf(0),
	"int64":    reflect.TypeOf(int64(0)),
	"uint":     reflect.TypeOf(uint(0)),
	"float":    reflect.TypeOf(0.0),
	"bool":     reflect.TypeOf(false),
	"time":     reflect.TypeOf(time.Time{}),
	"duration": reflect.TypeOf(time.Duration(0)),
}

// Option configures Compile.
type Option func(*options)

type options struct {
	logger    *zap.Logger
	inflector binding.Inflector
}

// WithLogger sets the logger handed to every compiled type.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithInflector replaces the built-in pluralizer used for auto-wrappers.
func WithInflector(i binding.Inflector) Option {
	return func(o *options) { o.inflector = i }
}

// Set is a compiled schema. It is read-only and safe for concurrent use.
type Set struct {
	types map[string]*Type
	order []string
}

// Type returns the compiled type called name.
func (s *Set) Type(name string) (*Type, bool) {
	t, ok := s.types[name]
	return t, ok
}

// Names returns the type names in declaration order.
func (s *Set) Names() []string {
	return slices.Clone(s.order)
}

// Compile validates f and builds a descriptor for every field. A nil
// registry means the built-in transforms only.
func Compile(f *File, registry *TransformRegistry, opts ...Option) (*Set, error) {
	if registry == nil {
		registry = NewTransformRegistry()
	}

	if diags := Validate(f, registry); diags.HasErrors() {
		return nil, fmt.Errorf("invalid schema: %w", diags.Error())
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	convention, _ := naming.Lookup(f.Convention)

	set := &Set{types: make(map[string]*Type, len(f.Types))}

	for i := range f.Types {
		td := &f.Types[i]

		t := &Type{
			Name: td.Name,
			Tag:  td.Tag,
			Config: binding.Config{
				Convention: convention,
				Inflector:  o.inflector,
				Namespace:  typeNamespace(f, td),
				Namespaces: f.Namespaces,
				Logger:     o.logger.With(zap.String("type", td.Name)),
			},
		}

		if t.Tag == "" {
			t.Tag = naming.Conventionize(td.Name, convention)
		}

		set.types[td.Name] = t
		set.order = append(set.order, td.Name)
	}

	c := compiler{set: set, registry: registry}

	for i := range f.Types {
		td := &f.Types[i]
		t := set.types[td.Name]

		for j := range td.Fields {
			d, err := c.descriptor(&td.Fields[j])
			if err != nil {
				return nil, fmt.Errorf("type %s: field %s: %w", td.Name, td.Fields[j].Label(), err)
			}

			if err := d.Validate(); err != nil {
				return nil, fmt.Errorf("type %s: %w", td.Name, err)
			}

			t.Fields = append(t.Fields, d)
		}
	}

	return set, nil
}

func typeNamespace(f *File, td *TypeDef) string {
	switch {
	case td.Namespace.None:
		return ""
	case td.Namespace.Prefix != "":
		return td.Namespace.Prefix
	default:
		return f.Namespace
	}
}

type compiler struct {
	set      *Set
	registry *TransformRegistry
}

func (c *compiler) descriptor(fd *FieldDef) (*binding.Descriptor, error) {
	kind, err := fd.BindingKind()
	if err != nil {
		return nil, err
	}

	name, explicit := fd.WireName()

	d := &binding.Descriptor{
		Kind:         kind,
		Name:         name,
		NameExplicit: explicit,
		Accessor:     fd.Accessor,
		Array:        fd.Array,
		Required:     fd.Required,
		Default:      fd.Default,
		Frozen:       fd.Frozen,
		Wrapper:      fd.In,
		Namespace:    fd.Namespace.Prefix,
		NoNamespace:  fd.Namespace.None,
		Mode:         fd.Mode(),
		CData:        fd.CData,
	}

	// named transforms see one element or one hash entry value at a time
	lift := func(t binding.Transform) binding.Transform {
		switch {
		case kind == binding.KindHash:
			return pairValue(t)
		case fd.Array:
			return binding.Elementwise(t)
		default:
			return t
		}
	}

	for _, tn := range fd.Transforms {
		t, ok := c.registry.Get(tn)
		if !ok {
			return nil, fmt.Errorf("unknown transform %q", tn)
		}

		d.Transforms = append(d.Transforms, lift(t))
	}

	if fd.ToXML != "" {
		t, ok := c.registry.Get(fd.ToXML)
		if !ok {
			return nil, fmt.Errorf("unknown transform %q", fd.ToXML)
		}

		d.ToXML = lift(t)
	}

	switch kind {
	case binding.KindHash:
		key, err := c.descriptor(&fd.Hash.Key.FieldDef)
		if err != nil {
			return nil, fmt.Errorf("key: %w", err)
		}

		value, err := c.descriptor(&fd.Hash.Value.FieldDef)
		if err != nil {
			return nil, fmt.Errorf("value: %w", err)
		}

		d.Hash = &binding.HashDefinition{Key: key, Value: value, Wrapper: fd.Hash.Wrapper}
	case binding.KindObject:
		if err := c.object(d, fd); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// object resolves the sought type of d. Schema types decode into Records;
// on write their values are bound to the type so they encode themselves.
func (c *compiler) object(d *binding.Descriptor, fd *FieldDef) error {
	if rt, ok := PrimitiveTypes[fd.As]; ok {
		st, err := binding.SoughtTypeOf(rt)
		if err != nil {
			return err
		}

		d.Sought = st

		return nil
	}

	target, ok := c.set.types[fd.As]
	if !ok {
		return fmt.Errorf("unknown type %q", fd.As)
	}

	d.Sought = &binding.SoughtType{
		Name: target.Name,
		Construct: func(n *xmlnode.Node) (any, error) {
			rec, err := target.Decode(n)
			if err != nil {
				return nil, err
			}

			return rec, nil
		},
	}

	var bind binding.Transform = func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}

		return target.Bind(v), nil
	}

	if fd.Array {
		bind = binding.Elementwise(bind)
	}

	if d.ToXML != nil {
		bind = chain(d.ToXML, bind)
	}

	d.ToXML = bind

	return nil
}
