package schema

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"xmlbind/binding"
	"xmlbind/internal/assign"
)

// TransformRegistry holds the named transforms a schema may refer to.
type TransformRegistry struct {
	transforms map[string]binding.Transform
}

// NewTransformRegistry creates a registry holding the built-in transforms:
// trim, upper, lower, title, int, float, bool, time and duration.
func NewTransformRegistry() *TransformRegistry {
	r := &TransformRegistry{transforms: make(map[string]binding.Transform)}

	r.Register("trim", textTransform(strings.TrimSpace))
	r.Register("upper", textTransform(func(s string) string { return cases.Upper(language.Und).String(s) }))
	r.Register("lower", textTransform(func(s string) string { return cases.Lower(language.Und).String(s) }))
	r.Register("title", textTransform(func(s string) string { return cases.Title(language.Und).String(s) }))
	r.Register("int", parseTransform(assign.KindInt, func(v any) any { return int(v.(int64)) }))
	r.Register("float", parseTransform(assign.KindFloat64, nil))
	r.Register("bool", parseTransform(assign.KindBool, nil))
	r.Register("time", parseTransform(assign.KindTime, nil))
	r.Register("duration", parseTransform(assign.KindDuration, nil))

	return r
}

// Register adds or replaces the transform called name.
func (r *TransformRegistry) Register(name string, fn binding.Transform) {
	r.transforms[name] = fn
}

// Get returns the transform called name.
func (r *TransformRegistry) Get(name string) (binding.Transform, bool) {
	fn, ok := r.transforms[name]
	return fn, ok
}

// Has returns true if a transform with the given name exists.
func (r *TransformRegistry) Has(name string) bool {
	_, exists := r.transforms[name]
	return exists
}

// Names returns all transform names, sorted.
func (r *TransformRegistry) Names() []string {
	names := make([]string, 0, len(r.transforms))
	for name := range r.transforms {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// textTransform applies f to the text form of a value. Nil passes through.
func textTransform(f func(string) string) binding.Transform {
	return func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}

		return f(assign.Format(v)), nil
	}
}

// parseTransform parses the text form of a value as kind k. Nil and blank
// text pass through as nil.
func parseTransform(k assign.KindEnum, convert func(any) any) binding.Transform {
	return func(v any) (any, error) {
		if v == nil {
			return nil, nil
		}

		text := assign.Format(v)
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}

		out, err := assign.Parse(k, text)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q: %w", text, err)
		}

		if convert != nil {
			out = convert(out)
		}

		return out, nil
	}
}

// pairValue runs t on the value of a hash entry, keeping its key.
func pairValue(t binding.Transform) binding.Transform {
	return func(v any) (any, error) {
		p, ok := v.(binding.Pair)
		if !ok {
			return t(v)
		}

		out, err := t(p.Value)
		if err != nil {
			return nil, fmt.Errorf("[%v]: %w", p.Key, err)
		}

		return binding.Pair{Key: p.Key, Value: out}, nil
	}
}

// chain runs transforms in order.
func chain(ts ...binding.Transform) binding.Transform {
	return func(v any) (any, error) {
		for _, t := range ts {
			var err error
			if v, err = t(v); err != nil {
				return nil, err
			}
		}

		return v, nil
	}
}
