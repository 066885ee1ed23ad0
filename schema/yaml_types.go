package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"xmlbind/internal/common"
)

// StringOrArray is a list that may be written as a single string.
type StringOrArray []string

// UnmarshalYAML accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array", node.Line)
	}
}

// MarshalYAML outputs a single string if length is 1, otherwise an array.
func (s StringOrArray) MarshalYAML() (any, error) {
	if common.IsSingle(s) {
		return s[0], nil
	}

	return []string(s), nil
}

// First returns the first element or empty string if empty.
func (s StringOrArray) First() string {
	if v, ok := common.First(s); ok {
		return v
	}

	return ""
}

// NamespaceOpt is a namespace setting: a prefix, or false to opt out of the
// inherited namespace.
type NamespaceOpt struct {
	Prefix string
	None   bool
}

// IsZero reports an unset option, so it is omitted on output.
func (o NamespaceOpt) IsZero() bool {
	return o.Prefix == "" && !o.None
}

// UnmarshalYAML accepts a prefix string or the boolean false.
func (o *NamespaceOpt) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: namespace must be a prefix or false", node.Line)
	}

	if node.ShortTag() == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}

		if b {
			return fmt.Errorf("line %d: namespace must be a prefix or false", node.Line)
		}

		*o = NamespaceOpt{None: true}

		return nil
	}

	*o = NamespaceOpt{Prefix: node.Value}

	return nil
}

// MarshalYAML writes false for an opt-out, the prefix otherwise.
func (o NamespaceOpt) MarshalYAML() (any, error) {
	if o.None {
		return false, nil
	}

	return o.Prefix, nil
}

// FieldSpec is a hash key or value: a plain string is the From shorthand,
// a mapping is a full field definition.
type FieldSpec struct {
	FieldDef
}

// UnmarshalYAML accepts the shorthand string or a field mapping.
func (s *FieldSpec) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = FieldSpec{FieldDef{From: node.Value}}
		return nil
	case yaml.MappingNode:
		var def FieldDef
		if err := node.Decode(&def); err != nil {
			return err
		}

		*s = FieldSpec{def}

		return nil
	default:
		return fmt.Errorf("line %d: expected a shorthand string or a field mapping", node.Line)
	}
}

// MarshalYAML writes the shorthand when nothing but From is set.
func (s FieldSpec) MarshalYAML() (any, error) {
	if s.isShorthand() {
		return s.From, nil
	}

	return s.FieldDef, nil
}
