// Package assign moves values produced by the binding layer into Go values
// and reads named fields back out of them.
//
// The binding layer works with a handful of loose shapes: strings, []any,
// ordered mappings and records. Value converts those into whatever the
// destination declares (primitive kinds, time values, text unmarshalers,
// slices, maps, structs and pointers to any of these), dispatching on the
// destination shape the same way for every field.
package assign
