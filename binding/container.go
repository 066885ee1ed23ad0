package binding

import (
	"fmt"
	"iter"
	"reflect"
	"slices"

	"gopkg.in/yaml.v3"
)

// Pair is one hash entry. Hash transforms receive and return Pairs.
type Pair struct {
	Key   any
	Value any
}

// Freezer is implemented by values that can be made read-only in place.
type Freezer interface {
	Freeze()
}

// List is an ordered sequence that can be frozen. Frozen array values are
// returned as *List.
type List struct {
	items  []any
	frozen bool
}

// NewList returns a mutable list holding items.
func NewList(items ...any) *List {
	return &List{items: slices.Clone(items)}
}

func (l *List) Len() int { return len(l.items) }

func (l *List) At(i int) any { return l.items[i] }

// Items returns a copy of the elements.
func (l *List) Items() []any { return slices.Clone(l.items) }

func (l *List) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i, v := range l.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

func (l *List) Append(values ...any) error {
	if l.frozen {
		return ErrFrozen
	}

	l.items = append(l.items, values...)

	return nil
}

func (l *List) Set(i int, v any) error {
	if l.frozen {
		return ErrFrozen
	}

	if i < 0 || i >= len(l.items) {
		return fmt.Errorf("index %d out of range [0,%d)", i, len(l.items))
	}

	l.items[i] = v

	return nil
}

// Freeze makes the list and, recursively, its elements read-only.
func (l *List) Freeze() {
	if l.frozen {
		return
	}

	l.frozen = true
	for i, v := range l.items {
		l.items[i] = deepFreeze(v)
	}
}

func (l *List) Frozen() bool { return l.frozen }

func (l *List) MarshalYAML() (any, error) {
	return l.items, nil
}

// Hash is an insertion-ordered mapping produced by hash bindings.
type Hash struct {
	keys   []any
	values map[any]any
	frozen bool
}

// NewHash returns an empty mutable hash.
func NewHash() *Hash {
	return &Hash{values: map[any]any{}}
}

// hashKey makes k usable as a map key; uncomparable keys use their text.
func hashKey(k any) any {
	if k == nil {
		return nil
	}

	if !reflect.TypeOf(k).Comparable() {
		return fmt.Sprint(k)
	}

	return k
}

func (h *Hash) Len() int { return len(h.keys) }

// Keys returns the keys in insertion order.
func (h *Hash) Keys() []any { return slices.Clone(h.keys) }

func (h *Hash) Get(k any) (any, bool) {
	v, ok := h.values[hashKey(k)]
	return v, ok
}

func (h *Hash) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range h.keys {
			if !yield(k, h.values[k]) {
				return
			}
		}
	}
}

// Set adds or replaces the value under k. New keys go last.
func (h *Hash) Set(k, v any) error {
	if h.frozen {
		return ErrFrozen
	}

	if h.values == nil {
		h.values = map[any]any{}
	}

	k = hashKey(k)
	if _, ok := h.values[k]; !ok {
		h.keys = append(h.keys, k)
	}

	h.values[k] = v

	return nil
}

func (h *Hash) Delete(k any) error {
	if h.frozen {
		return ErrFrozen
	}

	k = hashKey(k)
	if _, ok := h.values[k]; !ok {
		return nil
	}

	delete(h.values, k)
	h.keys = slices.DeleteFunc(h.keys, func(x any) bool { return x == k })

	return nil
}

// Freeze makes the hash and, recursively, its keys and values read-only.
func (h *Hash) Freeze() {
	if h.frozen {
		return
	}

	h.frozen = true
	for _, k := range h.keys {
		deepFreeze(k)
		h.values[k] = deepFreeze(h.values[k])
	}
}

func (h *Hash) Frozen() bool { return h.frozen }

// MarshalYAML emits the entries as an ordered mapping.
func (h *Hash) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for k, v := range h.All() {
		var kn, vn yaml.Node
		if err := kn.Encode(k); err != nil {
			return nil, err
		}

		if err := vn.Encode(v); err != nil {
			return nil, err
		}

		node.Content = append(node.Content, &kn, &vn)
	}

	return node, nil
}

// fold groups pairs by key in first-seen order. A key seen once maps to its
// single value; a key seen more than once maps to all its values as []any.
func fold(pairs []Pair) *Hash {
	h := NewHash()
	grouped := map[any][]any{}

	for _, p := range pairs {
		k := hashKey(p.Key)
		if _, seen := grouped[k]; !seen {
			h.keys = append(h.keys, k)
		}

		grouped[k] = append(grouped[k], p.Value)
	}

	for k, vs := range grouped {
		if len(vs) == 1 {
			h.values[k] = vs[0]
		} else {
			h.values[k] = vs
		}
	}

	return h
}

// Freeze makes v read-only the way frozen bindings do and returns the
// result, which for a []any is a new frozen *List.
func Freeze(v any) any { return deepFreeze(v) }

// deepFreeze returns v made read-only: []any becomes a frozen *List, *List,
// *Hash and Freezer values are frozen in place. Strings and other plain
// values are already immutable.
func deepFreeze(v any) any {
	switch x := v.(type) {
	case []any:
		l := &List{items: slices.Clone(x)}
		l.Freeze()

		return l
	case Freezer:
		x.Freeze()
		return x
	default:
		return v
	}
}
