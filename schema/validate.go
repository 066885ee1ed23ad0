package schema

import (
	"fmt"
	"sort"
	"strings"

	"xmlbind/binding"
	"xmlbind/internal/diagnostic"
	"xmlbind/internal/match"
	"xmlbind/internal/xpath"
	"xmlbind/naming"
	"xmlbind/xmlnode"
)

// Validate checks a schema file against the transforms of registry. It is a
// structural check: names must resolve and field options must combine.
func Validate(f *File, registry *TransformRegistry) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("schema_is_nil", "schema file is nil", "", "")
		return res
	}

	if registry == nil {
		registry = NewTransformRegistry()
	}

	if _, ok := naming.Lookup(f.Convention); !ok {
		res.AddError("unknown_convention", fmt.Sprintf("unknown naming convention %q", f.Convention), "", "",
			match.Suggest(f.Convention, naming.Names())...)
	}

	v := &validator{res: res, file: f, registry: registry, types: map[string]struct{}{}}
	v.checkNamespace(f.Namespace, "", "")

	for i := range f.Types {
		name := f.Types[i].Name
		if name == "" {
			res.AddError("missing_type_name", fmt.Sprintf("type #%d has no name", i+1), "", "")
			continue
		}

		if _, ok := v.types[name]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("duplicate type %q", name), name, "")
			continue
		}

		v.types[name] = struct{}{}
	}

	for i := range f.Types {
		v.validateType(&f.Types[i])
	}

	return res
}

type validator struct {
	res      *diagnostic.Diagnostics
	file     *File
	registry *TransformRegistry
	types    map[string]struct{}
}

func (v *validator) typeNames() []string {
	names := make([]string, 0, len(v.types)+len(PrimitiveTypes))
	for name := range v.types {
		names = append(names, name)
	}

	for name := range PrimitiveTypes {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (v *validator) validateType(td *TypeDef) {
	v.checkNamespace(td.Namespace.Prefix, td.Name, "")

	if len(td.Fields) == 0 {
		v.res.AddWarning("empty_type", "type declares no fields", td.Name, "")
	}

	seen := map[string]struct{}{}

	for i := range td.Fields {
		fd := &td.Fields[i]
		if fd.Accessor == "" {
			v.res.AddError("missing_accessor", fmt.Sprintf("field #%d has no accessor", i+1), td.Name, fd.From)
			continue
		}

		if _, ok := seen[fd.Accessor]; ok {
			v.res.AddError("duplicate_field", fmt.Sprintf("duplicate field %q", fd.Accessor), td.Name, fd.Accessor)
			continue
		}

		seen[fd.Accessor] = struct{}{}

		v.validateField(td.Name, fd, false)
	}
}

// validateField checks one field; inHash is set for hash keys and values,
// which need no accessor of their own.
func (v *validator) validateField(typ string, fd *FieldDef, inHash bool) {
	label := fd.Label()

	kind, err := fd.BindingKind()
	if err != nil {
		v.res.AddError("unknown_kind", fmt.Sprintf("unknown kind %q", fd.Kind), typ, label,
			match.Suggest(fd.Kind, binding.KindNames())...)

		return
	}

	v.checkNamespace(fd.Namespace.Prefix, typ, label)
	v.checkShape(typ, label, fd, kind, inHash)

	for _, name := range fd.Transforms {
		v.checkTransform(typ, label, name)
	}

	if fd.ToXML != "" {
		v.checkTransform(typ, label, fd.ToXML)
	}

	if fd.Required && fd.Default != nil {
		v.res.AddWarning("required_with_default", "required field has a default; the default wins when the value is missing",
			typ, label)
	}

	switch kind {
	case binding.KindHash:
		if fd.Hash == nil {
			v.res.AddError("missing_hash", "hash fields need a hash definition with a key and a value", typ, label)
			return
		}

		if fd.ToXML != "" {
			v.res.AddError("unsupported_to_xml", "to_xml is not supported on hash fields", typ, label)
		}

		v.validateField(typ, &fd.Hash.Key.FieldDef, true)
		v.validateField(typ, &fd.Hash.Value.FieldDef, true)
	case binding.KindObject:
		if fd.As == "" {
			v.res.AddError("missing_type", "object fields need a type in as", typ, label)
			return
		}

		if _, ok := v.types[fd.As]; !ok {
			if _, ok := PrimitiveTypes[fd.As]; !ok {
				v.res.AddError("unknown_type", fmt.Sprintf("unknown type %q", fd.As), typ, label,
					match.Suggest(fd.As, v.typeNames())...)
			}
		}
	}
}

func (v *validator) checkShape(typ, label string, fd *FieldDef, kind binding.Kind, inHash bool) {
	if fd.From != "" && fd.Name != "" {
		v.res.AddError("conflicting_name", "from and name cannot both be set", typ, label)
	}

	if fd.Kind != "" && fd.From != "" && kind != binding.KindAttribute && strings.HasPrefix(fd.From, attributePrefix) {
		v.res.AddError("conflicting_kind", fmt.Sprintf("from %q selects an attribute but kind is %s", fd.From, kind), typ, label)
	}

	if fd.Hash != nil && kind != binding.KindHash {
		v.res.AddError("conflicting_kind", fmt.Sprintf("hash definition on a %s field", kind), typ, label)
	}

	if fd.As != "" && kind != binding.KindObject {
		v.res.AddError("conflicting_kind", fmt.Sprintf("as on a %s field", kind), typ, label)
	}

	mode := fd.Mode()
	if mode != binding.ModeElement {
		if kind != binding.KindText {
			v.res.AddError("invalid_mode", fmt.Sprintf("from %q only applies to text fields", fd.From), typ, label)
		}

		if fd.Array {
			v.res.AddError("mode_with_array", fmt.Sprintf("from %q cannot be combined with array", fd.From), typ, label)
		}
	}

	if inHash && mode == binding.ModeElement && kind != binding.KindNamespace {
		if name, _ := fd.WireName(); name == "" && fd.Accessor == "" {
			v.res.AddError("missing_name", "hash keys and values need a name or a from shorthand", typ, label)
		}
	}

	if fd.In != "" {
		if _, err := xpath.Parse(fd.In); err != nil {
			v.res.AddError("invalid_wrapper", fmt.Sprintf("invalid wrapper %q: %v", fd.In, err), typ, label)
		}
	}
}

func (v *validator) checkTransform(typ, label, name string) {
	if v.registry.Has(name) {
		return
	}

	v.res.AddError("unknown_transform", fmt.Sprintf("unknown transform %q", name), typ, label,
		match.Suggest(name, v.registry.Names())...)
}

// checkNamespace warns about prefixes the file does not map to a URI. They
// still match elements carrying the same literal prefix.
func (v *validator) checkNamespace(prefix, typ, label string) {
	if prefix == "" || prefix == xpath.Wildcard || prefix == xmlnode.DefaultPrefix {
		return
	}

	if _, ok := v.file.Namespaces[prefix]; ok {
		return
	}

	v.res.AddWarning("undeclared_namespace", fmt.Sprintf("namespace prefix %q is not declared in namespaces", prefix),
		typ, label)
}
