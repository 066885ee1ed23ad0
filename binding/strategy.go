package binding

import (
	"fmt"

	"xmlbind/xmlnode"
)

// strategy supplies the kind-specific read and write halves of a Reference.
type strategy interface {
	fetch(r *Reference, n *xmlnode.Node) (any, error)
	update(r *Reference, n *xmlnode.Node, value any) error
}

// postProcessor replaces the plain transform pipeline for strategies that
// post-process differently.
type postProcessor interface {
	postProcess(r *Reference, v any) (any, error)
}

func strategyFor(k Kind) strategy {
	switch k {
	case KindAttribute:
		return attributeStrategy{}
	case KindNamespace:
		return namespaceStrategy{}
	case KindHash:
		return hashStrategy{}
	case KindObject:
		return objectStrategy{}
	default:
		return textStrategy{}
	}
}

type attributeStrategy struct{}

func (attributeStrategy) fetch(r *Reference, n *xmlnode.Node) (any, error) {
	return r.nodesIn(n, func(node *xmlnode.Node) (any, error) {
		return node.Value(), nil
	})
}

// update writes arrays onto a fresh wrapper node per value. Writing the same
// array twice therefore duplicates the wrappers.
func (attributeStrategy) update(r *Reference, n *xmlnode.Node, value any) error {
	if !r.desc.Array {
		xmlnode.SetAttribute(r.wrap(n, false), r.Name(), toText(value))
		return nil
	}

	items, err := itemsOf(value)
	if err != nil {
		return fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	for _, item := range items {
		xmlnode.SetAttribute(r.wrap(n, true), r.Name(), toText(item))
	}

	return nil
}

type textStrategy struct{}

func (textStrategy) fetch(r *Reference, n *xmlnode.Node) (any, error) {
	var v string

	switch r.desc.Mode {
	case ModeContent:
		v = n.Content()
	case ModeName:
		v = n.Name()
	default:
		got, err := r.nodesIn(n, func(node *xmlnode.Node) (any, error) {
			return node.Content(), nil
		})
		if err != nil {
			return nil, err
		}

		if !r.several() && r.desc.Required && r.desc.Default == nil && isBlank(got) {
			return nil, r.missing(n)
		}

		return got, nil
	}

	if isBlank(v) {
		if r.desc.Required && r.desc.Default == nil {
			return nil, r.missing(n)
		}

		return r.desc.Default, nil
	}

	return v, nil
}

func (textStrategy) update(r *Reference, n *xmlnode.Node, value any) error {
	w := r.wrap(n, false)

	switch {
	case r.desc.Mode == ModeContent:
		r.write(w, value)
	case r.desc.Mode == ModeName:
		w.SetName(toText(value))
	case r.desc.Array:
		items, err := itemsOf(value)
		if err != nil {
			return fmt.Errorf("%s: %w", r.desc.Accessor, err)
		}

		for _, item := range items {
			r.write(xmlnode.AddNode(w, r.qualify(r.Name())), item)
		}
	default:
		r.write(xmlnode.AddNode(w, r.qualify(r.Name())), value)
	}

	return nil
}

// write sets the text of dest, as CDATA when configured.
func (r *Reference) write(dest *xmlnode.Node, value any) {
	if r.desc.CData {
		xmlnode.AddCData(dest, toText(value))
		return
	}

	xmlnode.SetContent(dest, toText(value))
}

type namespaceStrategy struct{}

func (namespaceStrategy) fetch(_ *Reference, n *xmlnode.Node) (any, error) {
	return n.NamespacePrefix(), nil
}

func (namespaceStrategy) update(r *Reference, _ *xmlnode.Node, _ any) error {
	return fmt.Errorf("%s: writing a namespace binding: %w", r.desc.label(), ErrUnsupported)
}
