package assign

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
)

// Assigner is implemented by values that know how to store themselves into
// a destination, such as decoded records filling a struct.
type Assigner interface {
	AssignTo(dst reflect.Value) error
}

// FieldGetter exposes named fields without reflection.
type FieldGetter interface {
	Field(name string) (any, bool)
}

// Mapping is an ordered key/value container.
type Mapping interface {
	Keys() []any
	Get(key any) (any, bool)
}

// Sequence is an ordered list container.
type Sequence interface {
	Items() []any
}

var (
	// ErrNotSettable is returned when a destination cannot be written.
	ErrNotSettable = errors.New("destination is not settable")
	// ErrNoField is returned when a struct has no exported field of a name.
	ErrNoField = errors.New("no such exported field")
)

// Get reads the field name from src: a FieldGetter, a Mapping, a struct (or
// pointer to one) by exported field name, or a map keyed by strings.
func Get(src any, name string) (any, bool) {
	switch x := src.(type) {
	case nil:
		return nil, false
	case FieldGetter:
		return x.Field(name)
	case Mapping:
		return x.Get(name)
	case map[string]any:
		v, ok := x[name]
		return v, ok
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, false
		}

		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		f, ok := v.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return nil, false
		}

		return v.FieldByIndex(f.Index).Interface(), true
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}

		e := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}

		return e.Interface(), true
	default:
		return nil, false
	}
}

// Lookup is Get for callers that must tell a misspelled struct field from
// an absent entry. A struct without an exported field name fails with
// ErrNoField; any other miss yields nil.
func Lookup(src any, name string) (any, error) {
	if v, ok := Get(src, name); ok {
		return v, nil
	}

	switch src.(type) {
	case FieldGetter, Mapping:
		return nil, nil
	}

	v := reflect.ValueOf(src)
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, nil
		}

		v = v.Elem()
	}

	if v.Kind() == reflect.Struct {
		return nil, fmt.Errorf("%w: %s.%s", ErrNoField, v.Type(), name)
	}

	return nil, nil
}

// Set writes value into the field name of dst, which must be a pointer to a
// struct or a map keyed by strings.
func Set(dst any, name string, value any) error {
	v := reflect.ValueOf(dst)

	if v.Kind() == reflect.Map {
		return setMapEntry(v, name, value)
	}

	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("set %s: %w: %T", name, ErrNotSettable, dst)
	}

	v = v.Elem()

	switch v.Kind() {
	case reflect.Struct:
		f, ok := v.Type().FieldByName(name)
		if !ok || !f.IsExported() {
			return fmt.Errorf("set %s: no exported field in %s", name, v.Type())
		}

		if err := Value(v.FieldByIndex(f.Index), value); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}

		return nil
	case reflect.Map:
		if v.IsNil() {
			v.Set(reflect.MakeMap(v.Type()))
		}

		return setMapEntry(v, name, value)
	default:
		return fmt.Errorf("set %s: %w: %T", name, ErrNotSettable, dst)
	}
}

func setMapEntry(m reflect.Value, name string, value any) error {
	if m.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("set %s: map key must be a string, got %s", name, m.Type().Key())
	}

	if m.IsNil() {
		return fmt.Errorf("set %s: %w: nil map", name, ErrNotSettable)
	}

	elem := reflect.New(m.Type().Elem()).Elem()
	if err := Value(elem, value); err != nil {
		return fmt.Errorf("set %s: %w", name, err)
	}

	m.SetMapIndex(reflect.ValueOf(name).Convert(m.Type().Key()), elem)

	return nil
}

// Value stores src into dst, converting between the binding layer's value
// shapes (strings, []any, Sequence, Mapping) and the destination type.
// A nil src resets dst to its zero value.
func Value(dst reflect.Value, src any) error {
	if !dst.CanSet() {
		return ErrNotSettable
	}

	if src == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	sv := reflect.ValueOf(src)
	if sv.Type().AssignableTo(dst.Type()) {
		dst.Set(sv)
		return nil
	}

	if a, ok := src.(Assigner); ok {
		return a.AssignTo(dst)
	}

	switch Dispatch(dst.Type()) {
	case DispatcherInterface:
		return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
	case DispatcherPointer:
		elem := reflect.New(dst.Type().Elem())
		if err := Value(elem.Elem(), src); err != nil {
			return err
		}

		dst.Set(elem)

		return nil
	case DispatcherText:
		ptr := reflect.New(dst.Type())
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(Format(src))); err != nil {
			return err
		}

		dst.Set(ptr.Elem())

		return nil
	case DispatcherPrimitive:
		return primitiveValue(dst, src)
	case DispatcherSlice:
		return sliceValue(dst, src)
	case DispatcherMap:
		return mapValue(dst, src)
	case DispatcherStruct:
		return structValue(dst, src)
	default:
		return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
	}
}

func primitiveValue(dst reflect.Value, src any) error {
	kind := FromReflectType(dst.Type())
	sv := reflect.ValueOf(src)

	if kind == KindString {
		dst.SetString(Format(src))
		return nil
	}

	if FromReflectType(sv.Type()) == 0 || sv.Kind() == reflect.String {
		parsed, err := Parse(kind, Format(src))
		if err != nil {
			return err
		}

		sv = reflect.ValueOf(parsed)
	}

	if !sv.Type().ConvertibleTo(dst.Type()) {
		return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
	}

	dst.Set(sv.Convert(dst.Type()))

	return nil
}

func itemsOf(src any) ([]any, bool) {
	switch x := src.(type) {
	case []any:
		return x, true
	case Sequence:
		return x.Items(), true
	}

	sv := reflect.ValueOf(src)
	if sv.Kind() != reflect.Slice && sv.Kind() != reflect.Array {
		return nil, false
	}

	out := make([]any, sv.Len())
	for i := range out {
		out[i] = sv.Index(i).Interface()
	}

	return out, true
}

func sliceValue(dst reflect.Value, src any) error {
	items, ok := itemsOf(src)
	if !ok {
		// a single value lands in a one-element slice
		items = []any{src}
	}

	var out reflect.Value

	if dst.Kind() == reflect.Array {
		if len(items) > dst.Len() {
			return fmt.Errorf("%d values do not fit in %s", len(items), dst.Type())
		}

		out = reflect.New(dst.Type()).Elem()
	} else {
		out = reflect.MakeSlice(dst.Type(), len(items), len(items))
	}

	for i, item := range items {
		if err := Value(out.Index(i), item); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}

	dst.Set(out)

	return nil
}

func entriesOf(src any) ([]any, func(any) any, bool) {
	if m, ok := src.(Mapping); ok {
		get := func(k any) any {
			v, _ := m.Get(k)
			return v
		}

		return m.Keys(), get, true
	}

	sv := reflect.ValueOf(src)
	if sv.Kind() != reflect.Map {
		return nil, nil, false
	}

	keys := make([]any, 0, sv.Len())
	for _, k := range sv.MapKeys() {
		keys = append(keys, k.Interface())
	}

	sort.Slice(keys, func(i, j int) bool { return Format(keys[i]) < Format(keys[j]) })

	return keys, func(k any) any { return sv.MapIndex(reflect.ValueOf(k)).Interface() }, true
}

func mapValue(dst reflect.Value, src any) error {
	keys, get, ok := entriesOf(src)
	if !ok {
		return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
	}

	out := reflect.MakeMapWithSize(dst.Type(), len(keys))

	for _, k := range keys {
		kv := reflect.New(dst.Type().Key()).Elem()
		if err := Value(kv, k); err != nil {
			return fmt.Errorf("key %v: %w", k, err)
		}

		ev := reflect.New(dst.Type().Elem()).Elem()
		if err := Value(ev, get(k)); err != nil {
			return fmt.Errorf("[%v]: %w", k, err)
		}

		out.SetMapIndex(kv, ev)
	}

	dst.Set(out)

	return nil
}

func structValue(dst reflect.Value, src any) error {
	keys, get, ok := entriesOf(src)
	if !ok {
		return fmt.Errorf("cannot assign %T to %s", src, dst.Type())
	}

	out := reflect.New(dst.Type()).Elem()

	for _, k := range keys {
		name, isString := k.(string)
		if !isString {
			continue
		}

		f, found := dst.Type().FieldByName(name)
		if !found || !f.IsExported() {
			continue
		}

		if err := Value(out.FieldByIndex(f.Index), get(k)); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	dst.Set(out)

	return nil
}

// Indirect returns the value behind any number of pointers, or an invalid
// value when a nil pointer is met.
func Indirect(v any) reflect.Value {
	if v == nil {
		return reflect.Value{}
	}

	rv := reflect.ValueOf(v)
	depth, _ := ptrDepthAndBase(rv.Type())

	for range depth {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}
