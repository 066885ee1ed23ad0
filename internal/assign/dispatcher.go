package assign

import (
	"encoding"
	"reflect"
)

type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	DispatcherText
	DispatcherPrimitive
	DispatcherInterface
	DispatcherPointer
	DispatcherSlice
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Dispatch picks the assignment strategy for a destination type. Types whose
// pointer implements encoding.TextUnmarshaler win over their primitive kind,
// so named types with custom parsing keep it.
func Dispatch(dst reflect.Type) DispatcherEnum {
	if dst.Kind() == reflect.Interface {
		return DispatcherInterface
	}

	if dst.Kind() == reflect.Ptr {
		return DispatcherPointer
	}

	if reflect.PointerTo(dst).Implements(textUnmarshalerType) {
		return DispatcherText
	}

	if FromReflectType(dst) != 0 {
		return DispatcherPrimitive
	}

	switch dst.Kind() {
	case reflect.Slice, reflect.Array:
		return DispatcherSlice
	case reflect.Map:
		return DispatcherMap
	case reflect.Struct:
		return DispatcherStruct
	default:
		return DispatcherUnknown
	}
}

// ptrDepthAndBase returns the pointer depth and the final base type.
func ptrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}
