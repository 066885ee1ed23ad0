package binding

import (
	"errors"
	"fmt"

	"xmlbind/xmlnode"
)

var (
	// ErrRequiredElementMissing matches every *RequiredElementMissingError.
	ErrRequiredElementMissing = errors.New("required element missing")
	// ErrFrozen is returned when mutating a frozen List or Hash.
	ErrFrozen = errors.New("value is frozen")
	// ErrUnsupported is returned by bindings that cannot be written.
	ErrUnsupported = errors.New("operation not supported")
	// ErrNotSequence is returned when an array binding is given a scalar.
	ErrNotSequence = errors.New("value is not a sequence")
	// ErrInvalidDescriptor wraps every Descriptor.Validate failure.
	ErrInvalidDescriptor = errors.New("invalid binding descriptor")
)

// RequiredElementMissingError reports a required field whose query matched
// nothing, or whose content was blank, with no default configured.
type RequiredElementMissingError struct {
	Name     string
	Node     *xmlnode.Node
	Accessor string
}

func (e *RequiredElementMissingError) Error() string {
	return fmt.Sprintf("%s: %s from %s for %s", ErrRequiredElementMissing, e.Name, e.Node, e.Accessor)
}

func (e *RequiredElementMissingError) Is(target error) bool {
	return target == ErrRequiredElementMissing
}
