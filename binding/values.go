package binding

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"xmlbind/internal/assign"
)

// isBlank reports absent values and whitespace-only strings.
func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []byte:
		return strings.TrimSpace(string(x)) == ""
	default:
		return false
	}
}

// toText is the textual form written into content and attributes.
func toText(v any) string {
	return assign.Format(v)
}

// itemsOf flattens the sequence shapes accepted by array writes.
func itemsOf(v any) ([]any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []any:
		return x, nil
	case assign.Sequence:
		return x.Items(), nil
	case []byte, string:
		return nil, fmt.Errorf("%w: %T", ErrNotSequence, v)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T", ErrNotSequence, v)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// pairsOf flattens the mapping shapes accepted by hash writes. A value that
// is itself a sequence expands into one pair per element. Go maps are
// walked in sorted key order.
func pairsOf(v any) ([]Pair, error) {
	var raw []Pair

	switch x := v.(type) {
	case nil:
		return nil, nil
	case []Pair:
		raw = x
	case assign.Mapping:
		for _, k := range x.Keys() {
			val, _ := x.Get(k)
			raw = append(raw, Pair{Key: k, Value: val})
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return nil, fmt.Errorf("cannot write %T as a hash", v)
		}

		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return toText(keys[i].Interface()) < toText(keys[j].Interface())
		})

		for _, k := range keys {
			raw = append(raw, Pair{Key: k.Interface(), Value: rv.MapIndex(k).Interface()})
		}
	}

	out := make([]Pair, 0, len(raw))

	for _, p := range raw {
		items, err := itemsOf(p.Value)
		if p.Value == nil || err != nil {
			out = append(out, p)
			continue
		}

		for _, item := range items {
			out = append(out, Pair{Key: p.Key, Value: item})
		}
	}

	return out, nil
}

// Elementwise lifts t over sequences: a []any, *List or any other slice has
// t applied to every element, anything else is passed to t directly.
func Elementwise(t Transform) Transform {
	return func(v any) (any, error) {
		if v == nil {
			return t(v)
		}

		items, err := itemsOf(v)
		if err != nil {
			return t(v)
		}

		out := make([]any, len(items))

		for i, item := range items {
			r, err := t(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}

			out[i] = r
		}

		return out, nil
	}
}
