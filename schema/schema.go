package schema

import (
	"strings"

	"xmlbind/binding"
)

// Shorthand forms of FieldDef.From.
const (
	FromContent     = "."
	FromName        = "*"
	attributePrefix = "@"
)

// File represents the root of a YAML binding schema.
type File struct {
	// Version of the schema format.
	Version string `yaml:"version,omitempty"`

	// Convention names the naming convention applied to field names
	// (see naming.Names). Empty means names are used as written.
	Convention string `yaml:"convention,omitempty"`

	// Namespace is the default prefix for every type, or "*" for any.
	Namespace string `yaml:"namespace,omitempty"`

	// Namespaces maps the prefixes used in the schema to namespace URIs.
	// Encoded documents declare them on the root element.
	Namespaces map[string]string `yaml:"namespaces,omitempty"`

	Types []TypeDef `yaml:"types"`
}

// TypeDef declares one binding class.
type TypeDef struct {
	Name string `yaml:"name"`

	// Tag is the root element name used when encoding. Defaults to the
	// type name passed through the convention.
	Tag string `yaml:"tag,omitempty"`

	// Namespace overrides the file namespace for this type; false opts out.
	Namespace NamespaceOpt `yaml:"namespace,omitempty"`

	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field binding.
type FieldDef struct {
	// Accessor is the record key or struct field the value lives in.
	Accessor string `yaml:"accessor,omitempty"`

	// Name is the XML name before the naming convention is applied.
	Name string `yaml:"name,omitempty"`

	// From is the shorthand location: "@attr", ".", "*", or a verbatim
	// element name.
	From string `yaml:"from,omitempty"`

	Kind     string `yaml:"kind,omitempty"`
	Array    bool   `yaml:"array,omitempty"`
	Required bool   `yaml:"required,omitempty"`
	Default  any    `yaml:"default,omitempty"`
	Frozen   bool   `yaml:"frozen,omitempty"`

	// In is an explicit wrapper path such as "a/b".
	In string `yaml:"in,omitempty"`

	Namespace NamespaceOpt `yaml:"namespace,omitempty"`
	CData     bool         `yaml:"cdata,omitempty"`

	// Transforms name registry transforms run after extraction.
	Transforms StringOrArray `yaml:"transforms,omitempty"`
	// ToXML names a registry transform run before writing.
	ToXML string `yaml:"to_xml,omitempty"`

	// As names the nested object type: another schema type or one of
	// PrimitiveTypes.
	As string `yaml:"as,omitempty"`

	Hash *HashDef `yaml:"hash,omitempty"`
}

// HashDef describes the key and value of each entry of a hash field.
type HashDef struct {
	Key   FieldSpec `yaml:"key"`
	Value FieldSpec `yaml:"value"`
	// Wrapper is the element holding one entry.
	Wrapper string `yaml:"wrapper,omitempty"`
}

// Label identifies the field in diagnostics.
func (f *FieldDef) Label() string {
	if f.Accessor != "" {
		return f.Accessor
	}

	return f.From
}

// BindingKind resolves the binding kind: the explicit kind, else hash when
// a hash definition is present, object when a type is named, attribute for
// the "@" shorthand and text otherwise.
func (f *FieldDef) BindingKind() (binding.Kind, error) {
	switch {
	case f.Kind != "":
		return binding.ParseKind(f.Kind)
	case f.Hash != nil:
		return binding.KindHash, nil
	case f.As != "":
		return binding.KindObject, nil
	case strings.HasPrefix(f.From, attributePrefix):
		return binding.KindAttribute, nil
	default:
		return binding.KindText, nil
	}
}

// Mode is the text mode selected by the "." and "*" shorthands.
func (f *FieldDef) Mode() binding.Mode {
	switch f.From {
	case FromContent:
		return binding.ModeContent
	case FromName:
		return binding.ModeName
	default:
		return binding.ModeElement
	}
}

// WireName returns the XML name and whether it bypasses the convention.
// Names given through From are verbatim.
func (f *FieldDef) WireName() (string, bool) {
	switch {
	case f.From == "" || f.From == FromContent || f.From == FromName:
		return f.Name, false
	case strings.HasPrefix(f.From, attributePrefix):
		return strings.TrimPrefix(f.From, attributePrefix), true
	default:
		return f.From, true
	}
}

func (f *FieldDef) isShorthand() bool {
	return f.From != "" && f.Accessor == "" && f.Name == "" && f.Kind == "" &&
		!f.Array && !f.Required && f.Default == nil && !f.Frozen && f.In == "" &&
		f.Namespace.IsZero() && !f.CData && len(f.Transforms) == 0 && f.ToXML == "" &&
		f.As == "" && f.Hash == nil
}
