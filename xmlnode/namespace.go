package xmlnode

import "github.com/beevik/etree"

// DefaultPrefix is the pseudo prefix standing for the default namespace in
// scope at the queried node. DefaultNamespace returns it and Search
// resolves it.
const DefaultPrefix = "xmlns"

// DefaultNamespace returns DefaultPrefix when a non-empty default namespace
// is in scope at n, and "" otherwise.
func DefaultNamespace(n *Node) string {
	if n == nil {
		return ""
	}

	if defaultURI(n.elem) != "" {
		return DefaultPrefix
	}

	return ""
}

// defaultURI returns the default namespace URI in scope at e.
func defaultURI(e *etree.Element) string {
	for cur := e; cur != nil; cur = cur.Parent() {
		for _, a := range cur.Attr {
			if a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
		}
	}

	return ""
}

// lookupPrefix returns the URI bound to prefix in scope at e, or "".
func lookupPrefix(e *etree.Element, prefix string) string {
	if prefix == "xml" {
		return "http://www.w3.org/XML/1998/namespace"
	}

	for cur := e; cur != nil; cur = cur.Parent() {
		for _, a := range cur.Attr {
			if a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}

	return ""
}

// elementURI returns the namespace URI of e.
func elementURI(e *etree.Element) string {
	if e.Space == "" {
		return defaultURI(e)
	}

	return lookupPrefix(e, e.Space)
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

// DeclareNamespace adds an xmlns declaration on the element. An empty prefix
// declares the default namespace.
func DeclareNamespace(n *Node, prefix, uri string) {
	if prefix == "" {
		n.elem.CreateAttr("xmlns", uri)
		return
	}

	n.elem.CreateAttr("xmlns:"+prefix, uri)
}
