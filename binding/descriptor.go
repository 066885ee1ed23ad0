package binding

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"xmlbind/internal/assign"
	"xmlbind/xmlnode"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go
//go:generate go tool stringer -type=Mode -output=mode_string.go

// Kind selects the binding strategy of a descriptor.
type Kind int

const (
	KindText      Kind = iota // text
	KindAttribute             // attribute
	KindNamespace             // namespace
	KindHash                  // hash
	KindObject                // object
)

func (k Kind) valid() bool {
	return k >= KindText && k <= KindObject
}

// ParseKind resolves a kind by its name as printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	for k := KindText; k.valid(); k++ {
		if strings.EqualFold(s, k.String()) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("unknown binding kind %q", s)
}

// KindNames returns the names accepted by ParseKind in Kind order.
func KindNames() []string {
	var names []string
	for k := KindText; k.valid(); k++ {
		names = append(names, k.String())
	}

	return names
}

// Mode selects what a text binding addresses.
type Mode int

const (
	// ModeElement reads and writes a nested element.
	ModeElement Mode = iota
	// ModeContent reads and writes the node's own text.
	ModeContent
	// ModeName reads and writes the node's tag name.
	ModeName
)

// Transform post-processes an extracted value, or pre-processes a value
// before it is written.
type Transform func(any) (any, error)

// Constructor builds a nested object out of a matched node.
type Constructor func(n *xmlnode.Node) (any, error)

// SoughtType is the target of a nested-object binding.
type SoughtType struct {
	Name      string
	Construct Constructor
}

// HashDefinition describes the key and value of each hash entry. Wrapper is
// the element holding one entry; it defaults to the binding's own name.
type HashDefinition struct {
	Key     *Descriptor
	Value   *Descriptor
	Wrapper string
}

// Descriptor is the immutable binding of one field. Build it once and share
// it between references.
type Descriptor struct {
	Kind Kind

	// Name is the on-the-wire name. Unless NameExplicit is set it goes
	// through the naming convention; an empty Name falls back to Accessor.
	Name         string
	NameExplicit bool
	Accessor     string

	Array    bool
	Required bool
	Default  any
	Frozen   bool

	// Wrapper is an optional container path such as "a/b".
	Wrapper     string
	Namespace   string
	NoNamespace bool

	Mode  Mode
	CData bool

	Transforms []Transform
	ToXML      Transform

	Hash   *HashDefinition
	Sought *SoughtType
}

func (d *Descriptor) rawName() string {
	if d.Name != "" {
		return d.Name
	}

	return d.Accessor
}

// Validate reports descriptors that cannot be resolved.
func (d *Descriptor) Validate() error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvalidDescriptor, d.label(), fmt.Sprintf(format, args...))
	}

	if !d.Kind.valid() {
		return fail("unknown kind %d", int(d.Kind))
	}

	if d.Mode != ModeElement {
		if d.Kind != KindText {
			return fail("content and name modes only apply to text bindings")
		}

		if d.Array {
			return fail("content and name modes cannot be combined with array")
		}
	} else if d.Kind != KindNamespace && d.rawName() == "" {
		return fail("a name or an accessor is required")
	}

	switch d.Kind {
	case KindHash:
		if d.Hash == nil || d.Hash.Key == nil || d.Hash.Value == nil {
			return fail("hash bindings need a key and a value")
		}

		if err := d.Hash.Key.Validate(); err != nil {
			return fmt.Errorf("%s key: %w", d.label(), err)
		}

		if err := d.Hash.Value.Validate(); err != nil {
			return fmt.Errorf("%s value: %w", d.label(), err)
		}
	case KindObject:
		if d.Sought == nil || d.Sought.Construct == nil {
			return fail("object bindings need a sought type")
		}
	}

	return nil
}

func (d *Descriptor) label() string {
	switch {
	case d.Accessor != "":
		return d.Accessor
	case d.Name != "":
		return d.Name
	case d.Mode == ModeContent:
		return "."
	case d.Mode == ModeName:
		return "*"
	default:
		return d.Kind.String()
	}
}

// NodeUnmarshaler is implemented by types that build themselves from a
// matched node.
type NodeUnmarshaler interface {
	UnmarshalXMLNode(n *xmlnode.Node) error
}

// EncodeContext tells a nested object which tag to serialize itself as.
type EncodeContext struct {
	Name      string
	Namespace string
}

// NodeMarshaler is implemented by values that serialize themselves into a
// detached element.
type NodeMarshaler interface {
	MarshalXMLNode(ctx EncodeContext) (*xmlnode.Node, error)
}

var nodeUnmarshalerType = reflect.TypeOf((*NodeUnmarshaler)(nil)).Elem()
var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// SoughtTypeOf resolves how values of t are constructed from nodes. The
// check runs once: NodeUnmarshaler first, then encoding.TextUnmarshaler over
// the node content, then primitive parsing of the content. A pointer type
// yields pointers.
func SoughtTypeOf(t reflect.Type) (*SoughtType, error) {
	base := t
	if base.Kind() == reflect.Ptr {
		base = base.Elem()
	}

	result := func(p reflect.Value) any {
		if t.Kind() == reflect.Ptr {
			return p.Interface()
		}

		return p.Elem().Interface()
	}

	ptr := reflect.PointerTo(base)

	var construct Constructor

	switch {
	case ptr.Implements(nodeUnmarshalerType):
		construct = func(n *xmlnode.Node) (any, error) {
			p := reflect.New(base)
			if err := p.Interface().(NodeUnmarshaler).UnmarshalXMLNode(n); err != nil {
				return nil, err
			}

			return result(p), nil
		}
	case ptr.Implements(textUnmarshalerType):
		construct = func(n *xmlnode.Node) (any, error) {
			p := reflect.New(base)
			if err := p.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(n.Content())); err != nil {
				return nil, err
			}

			return result(p), nil
		}
	case assign.FromReflectType(base) != 0:
		construct = func(n *xmlnode.Node) (any, error) {
			p := reflect.New(base)
			if err := assign.Value(p.Elem(), n.Content()); err != nil {
				return nil, err
			}

			return result(p), nil
		}
	default:
		return nil, fmt.Errorf("type %s cannot be built from a node", t)
	}

	return &SoughtType{Name: t.String(), Construct: construct}, nil
}
