// Package binding resolves and injects single fields of an object against an
// XML element tree.
//
// A Descriptor declares how one field is addressed: through an attribute,
// the text of a nested element, the node's own content or tag name, its
// namespace prefix, a list of key/value pair elements, or a nested object.
// NewReference binds a descriptor to a Config and an owning instance; the
// resulting Reference reads the value with ValueIn and writes it back with
// ToXML and UpdateXML.
//
// # Resolution
//
// The on-the-wire name is the explicit name, or the raw name passed through
// the configured naming convention. Queries are qualified with the first
// namespace found among the descriptor, the Config and the default namespace
// in scope at the queried node; the wildcard namespace "*" matches the name
// in any namespace. Array fields without an explicit wrapper that find
// nothing retry once under the pluralized field name ("item" under "items"),
// and a later write through the same Reference reuses that wrapper.
//
// After fetching, blank values are replaced by the default, transforms run in
// declaration order and, for frozen descriptors, the result is made
// read-only: sequences become *List and mappings are frozen *Hash values.
//
// # Errors
//
// A required field that matches nothing, or whose content is blank, fails
// with *RequiredElementMissingError, which matches ErrRequiredElementMissing.
// Transform errors are prefixed with the accessor and keep their identity
// for errors.Is. Tree errors are returned unchanged.
package binding
