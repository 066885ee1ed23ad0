package xmlnode

import (
	"errors"

	"github.com/beevik/etree"

	"xmlbind/internal/xpath"
)

// Search evaluates a relative path from n and returns the matched nodes in
// document order. Prefixes in the path are resolved through namespaces
// first, then DefaultPrefix as the default namespace in scope at n, then the
// declarations in scope at each candidate. A prefix that resolves nowhere is
// compared literally against the candidate's prefix.
func Search(n *Node, path string, namespaces map[string]string) ([]*Node, error) {
	if n == nil {
		return nil, errors.New("xmlnode: search on nil node")
	}

	p, err := xpath.Parse(path)
	if err != nil {
		return nil, err
	}

	s := searcher{ctx: n, namespaces: namespaces}

	return s.eval(p), nil
}

type searcher struct {
	ctx        *Node
	namespaces map[string]string
}

func (s searcher) eval(p xpath.Path) []*Node {
	current := []*Node{s.ctx}

	for _, step := range p.Steps {
		var next []*Node

		seen := map[*etree.Element]struct{}{}

		for _, n := range current {
			switch step.Axis {
			case xpath.AxisSelf:
				next = append(next, n)
			case xpath.AxisParent:
				if par := n.Parent(); par != nil {
					if _, dup := seen[par.elem]; !dup {
						seen[par.elem] = struct{}{}
						next = append(next, par)
					}
				}
			case xpath.AxisAttribute:
				if n.isAttr {
					continue
				}

				for i := range n.elem.Attr {
					a := &n.elem.Attr[i]
					if s.matchAttr(n.elem, a, step) {
						next = append(next, attrNode(n.elem, a))
					}
				}
			case xpath.AxisChild:
				if n.isAttr {
					continue
				}

				for _, c := range n.elem.ChildElements() {
					if s.matchElement(c, step) {
						next = append(next, &Node{elem: c})
					}
				}
			}
		}

		current = next
	}

	return current
}

// resolve maps a path prefix to a namespace URI. ok is false when nothing
// binds the prefix.
func (s searcher) resolve(prefix string, candidate *etree.Element) (string, bool) {
	if uri, ok := s.namespaces[prefix]; ok {
		return uri, true
	}

	if prefix == DefaultPrefix {
		if uri := defaultURI(s.ctx.elem); uri != "" {
			return uri, true
		}
	}

	if uri := lookupPrefix(candidate, prefix); uri != "" {
		return uri, true
	}

	return "", false
}

func (s searcher) matchElement(e *etree.Element, step xpath.Step) bool {
	if step.Local != xpath.Wildcard && e.Tag != step.Local {
		return false
	}

	switch {
	case step.Prefix != "":
		uri, ok := s.resolve(step.Prefix, e)
		if !ok {
			if e.Space != step.Prefix {
				return false
			}
		} else if elementURI(e) != uri {
			return false
		}
	case step.Local != xpath.Wildcard:
		if elementURI(e) != "" {
			return false
		}
	}

	for _, pred := range step.Predicates {
		var got string

		switch pred.Func {
		case xpath.FuncLocalName:
			got = e.Tag
		case xpath.FuncNamespaceURI:
			got = elementURI(e)
		}

		if (got == pred.Literal) == pred.Negate {
			return false
		}
	}

	return true
}

func (s searcher) matchAttr(owner *etree.Element, a *etree.Attr, step xpath.Step) bool {
	if isNamespaceDecl(*a) || a.Key != step.Local {
		return false
	}

	if step.Prefix == "" {
		return a.Space == ""
	}

	if a.Space == "" {
		return false
	}

	uri, ok := s.resolve(step.Prefix, owner)
	if !ok {
		return a.Space == step.Prefix
	}

	return lookupPrefix(owner, a.Space) == uri
}
