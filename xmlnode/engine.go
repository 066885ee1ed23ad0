package xmlnode

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// ErrNoRoot is returned when a parsed document has no root element.
var ErrNoRoot = errors.New("xmlnode: document has no root element")

// Parse parses an XML document and returns its root element.
func Parse(data []byte) (*Node, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmlnode: parse: %w", err)
	}

	return rootOf(doc)
}

// ParseString is Parse for strings.
func ParseString(s string) (*Node, error) {
	return Parse([]byte(s))
}

// ParseReader reads and parses an XML document from r.
func ParseReader(r io.Reader) (*Node, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("xmlnode: parse: %w", err)
	}

	return rootOf(doc)
}

func rootOf(doc *etree.Document) (*Node, error) {
	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}

	return &Node{elem: root}, nil
}

// From normalizes the supported inputs into a Node: *Node, *etree.Element,
// *etree.Document, string and []byte (parsed as XML) and io.Reader.
func From(v any) (*Node, error) {
	switch x := v.(type) {
	case *Node:
		if x == nil {
			return nil, errors.New("xmlnode: nil node")
		}

		return x, nil
	case *etree.Element:
		if x == nil {
			return nil, errors.New("xmlnode: nil element")
		}

		return &Node{elem: x}, nil
	case *etree.Document:
		if x == nil {
			return nil, errors.New("xmlnode: nil document")
		}

		return rootOf(x)
	case string:
		return ParseString(x)
	case []byte:
		return Parse(x)
	case io.Reader:
		return ParseReader(x)
	default:
		return nil, fmt.Errorf("xmlnode: cannot build a node from %T", v)
	}
}

// NewElement creates a detached element. name may carry a prefix.
func NewElement(name string) *Node {
	return &Node{elem: etree.NewElement(name)}
}

// AddNode creates a child element named name under n and returns it.
func AddNode(n *Node, name string) *Node {
	return &Node{elem: n.elem.CreateElement(name)}
}

// AddChild appends child under n, detaching it from any previous parent.
func AddChild(n, child *Node) {
	n.elem.AddChild(child.elem)
}

// AddCData appends a CDATA section to n.
func AddCData(n *Node, text string) {
	n.elem.CreateCData(text)
}

// SetContent replaces the element's children with a single text node, or
// sets the value of an attribute node.
func SetContent(n *Node, text string) {
	if n.isAttr {
		n.elem.CreateAttr(n.FullName(), text)
		return
	}

	for _, tok := range append([]etree.Token(nil), n.elem.Child...) {
		n.elem.RemoveChild(tok)
	}

	n.elem.SetText(text)
}

// SetAttribute creates or replaces the attribute name on n.
func SetAttribute(n *Node, name, text string) {
	n.elem.CreateAttr(name, text)
}
