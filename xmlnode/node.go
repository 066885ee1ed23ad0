// Package xmlnode is the XML tree engine used by the binding layer.
//
// It adapts github.com/beevik/etree to the small surface the resolvers need:
// path search with namespace prefixes, node creation, text/CDATA/attribute
// mutation and a handful of accessors. A Node is either an element or one
// attribute of an element; attribute nodes are produced by "@name" steps.
package xmlnode

import (
	"strings"

	"github.com/beevik/etree"
)

// Node is a handle on an element or on one of its attributes.
type Node struct {
	elem *etree.Element

	// set for attribute nodes
	isAttr    bool
	attrSpace string
	attrKey   string
}

// Wrap returns a Node for an etree element. A nil element yields nil.
func Wrap(e *etree.Element) *Node {
	if e == nil {
		return nil
	}

	return &Node{elem: e}
}

func attrNode(e *etree.Element, a *etree.Attr) *Node {
	return &Node{elem: e, isAttr: true, attrSpace: a.Space, attrKey: a.Key}
}

// Element returns the underlying element. For attribute nodes it is the
// element carrying the attribute.
func (n *Node) Element() *etree.Element {
	return n.elem
}

// IsAttribute reports whether n addresses an attribute.
func (n *Node) IsAttribute() bool {
	return n.isAttr
}

func (n *Node) attr() *etree.Attr {
	return n.elem.SelectAttr(joinName(n.attrSpace, n.attrKey))
}

// Name returns the local name of the element or attribute.
func (n *Node) Name() string {
	if n.isAttr {
		return n.attrKey
	}

	return n.elem.Tag
}

// FullName returns the prefixed name ("ns:tag") as written in the document.
func (n *Node) FullName() string {
	if n.isAttr {
		return joinName(n.attrSpace, n.attrKey)
	}

	return n.elem.FullTag()
}

// SetName renames the element. A "prefix:name" value sets the prefix too.
// Renaming an attribute moves its value to the new key.
func (n *Node) SetName(name string) {
	space, local := splitName(name)

	if !n.isAttr {
		n.elem.Space, n.elem.Tag = space, local
		return
	}

	value := n.Value()
	n.elem.RemoveAttr(n.FullName())
	n.elem.CreateAttr(name, value)
	n.attrSpace, n.attrKey = space, local
}

// NamespacePrefix returns the namespace prefix used by the node, or "".
func (n *Node) NamespacePrefix() string {
	if n.isAttr {
		return n.attrSpace
	}

	return n.elem.Space
}

// NamespaceURI resolves the node's namespace against the declarations in
// scope. Unprefixed attributes have no namespace.
func (n *Node) NamespaceURI() string {
	if n.isAttr {
		if n.attrSpace == "" {
			return ""
		}

		return lookupPrefix(n.elem, n.attrSpace)
	}

	return elementURI(n.elem)
}

// Content returns the concatenated text of the element and all of its
// descendants, or the value of an attribute.
func (n *Node) Content() string {
	if n.isAttr {
		return n.Value()
	}

	var b strings.Builder

	collectText(n.elem, &b)

	return b.String()
}

func collectText(e *etree.Element, b *strings.Builder) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			collectText(t, b)
		}
	}
}

// Value returns the attribute value, or the content of an element.
func (n *Node) Value() string {
	if !n.isAttr {
		return n.Content()
	}

	if a := n.attr(); a != nil {
		return a.Value
	}

	return ""
}

// Children returns the child elements in document order.
func (n *Node) Children() []*Node {
	if n.isAttr {
		return nil
	}

	kids := n.elem.ChildElements()
	out := make([]*Node, len(kids))

	for i, k := range kids {
		out[i] = &Node{elem: k}
	}

	return out
}

// Child returns the first child element whose full name is name.
func (n *Node) Child(name string) *Node {
	if n.isAttr {
		return nil
	}

	for _, k := range n.elem.ChildElements() {
		if k.FullTag() == name {
			return &Node{elem: k}
		}
	}

	return nil
}

// Parent returns the parent element, the owning element for attributes, or
// nil at the root.
func (n *Node) Parent() *Node {
	if n.isAttr {
		return &Node{elem: n.elem}
	}

	p := n.elem.Parent()
	if p == nil || isDocument(p) {
		return nil
	}

	return &Node{elem: p}
}

// Attr returns the value of the named attribute and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	if n.isAttr {
		return "", false
	}

	a := n.elem.SelectAttr(name)
	if a == nil {
		return "", false
	}

	return a.Value, true
}

// String returns the node serialized as XML without indentation.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	if n.isAttr {
		return n.FullName() + `="` + n.Value() + `"`
	}

	s, err := n.XML(-1)
	if err != nil {
		return "<" + n.FullName() + ">"
	}

	return s
}

// XML serializes the element subtree. A negative indent disables
// indentation.
func (n *Node) XML(indent int) (string, error) {
	doc := etree.NewDocument()
	doc.SetRoot(n.elem.Copy())

	if indent >= 0 {
		doc.Indent(indent)
	}

	return doc.WriteToString()
}

// Document returns a new document whose root is a copy of the element, with
// an XML declaration.
func (n *Node) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(n.elem.Copy())

	return doc
}

func isDocument(e *etree.Element) bool {
	return e.Parent() == nil && e.Tag == "" && e.Space == ""
}

func joinName(space, local string) string {
	if space == "" {
		return local
	}

	return space + ":" + local
}

func splitName(name string) (space, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}

	return "", name
}
