package xpath

// Namespacify rewrites a plain path so that every unqualified element step is
// qualified with ns. When ns is Wildcard, each such step becomes
// "*[local-name()='name'][namespace-uri()!='']", matching the name in any
// namespace but not elements without one. Attribute, self, parent, wildcard
// and already-prefixed steps are left untouched.
//
// An empty ns returns the path unchanged.
func Namespacify(expr, ns string) (string, error) {
	if ns == "" {
		return expr, nil
	}

	p, err := Parse(expr)
	if err != nil {
		return "", err
	}

	return Qualify(p, ns).String(), nil
}

// Qualify is the parsed-path form of Namespacify. The input is not modified.
func Qualify(p Path, ns string) Path {
	out := Path{Steps: make([]Step, len(p.Steps))}

	for i, s := range p.Steps {
		s.Predicates = append([]Predicate(nil), s.Predicates...)

		if s.IsQualifiedName() && s.Prefix == "" && ns != "" {
			if ns == Wildcard {
				s.Predicates = append([]Predicate{
					{Func: FuncLocalName, Literal: s.Local},
					{Func: FuncNamespaceURI, Negate: true, Literal: ""},
				}, s.Predicates...)
				s.Local = Wildcard
			} else {
				s.Prefix = ns
			}
		}

		out.Steps[i] = s
	}

	return out
}
