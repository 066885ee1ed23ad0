package binding

import (
	"fmt"

	"xmlbind/xmlnode"
)

// objectStrategy builds nested objects of the sought type from matched
// nodes, and lets NodeMarshaler values serialize themselves on write.
type objectStrategy struct{}

func (objectStrategy) fetch(r *Reference, n *xmlnode.Node) (any, error) {
	return r.nodesIn(n, func(node *xmlnode.Node) (any, error) {
		v, err := r.desc.Sought.Construct(node)
		if err != nil {
			return nil, fmt.Errorf("%s: building %s: %w", r.desc.Accessor, r.desc.Sought.Name, err)
		}

		return v, nil
	})
}

func (objectStrategy) update(r *Reference, n *xmlnode.Node, value any) error {
	w := r.wrap(n, false)
	ctx := EncodeContext{Name: r.Name(), Namespace: r.writePrefix()}

	if !r.desc.Array {
		return r.writeObject(w, ctx, value)
	}

	items, err := itemsOf(value)
	if err != nil {
		return fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	for _, item := range items {
		if err := r.writeObject(w, ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (r *Reference) writeObject(parent *xmlnode.Node, ctx EncodeContext, value any) error {
	m, ok := value.(NodeMarshaler)
	if !ok {
		xmlnode.SetContent(xmlnode.AddNode(parent, r.qualify(r.Name())), toText(value))
		return nil
	}

	child, err := m.MarshalXMLNode(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	xmlnode.AddChild(parent, child)

	return nil
}
