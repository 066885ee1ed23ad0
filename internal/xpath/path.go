package xpath

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Axis identifies how a step moves from its context node.
type Axis int

const (
	// AxisChild selects child elements.
	AxisChild Axis = iota
	// AxisAttribute selects attributes of the context element.
	AxisAttribute
	// AxisSelf selects the context node itself (".").
	AxisSelf
	// AxisParent selects the parent element ("..").
	AxisParent
)

// Wildcard matches any local name in a name test, and stands for "any
// namespace" when passed to Namespacify.
const Wildcard = "*"

// Function names accepted inside predicates.
const (
	FuncLocalName    = "local-name"
	FuncNamespaceURI = "namespace-uri"
)

// Predicate is a single "[fn()='literal']" filter on an element step.
type Predicate struct {
	Func    string
	Negate  bool // "!=" instead of "="
	Literal string
}

// String returns the abbreviated form of the predicate.
func (p Predicate) String() string {
	op := "="
	if p.Negate {
		op = "!="
	}

	return "[" + p.Func + "()" + op + quote(p.Literal) + "]"
}

// Step is one location step of a Path.
type Step struct {
	Axis       Axis
	Prefix     string
	Local      string
	Predicates []Predicate
}

// IsQualifiedName reports whether the step is a child element step naming a
// concrete element (as opposed to "*", ".", ".." or an attribute).
func (s Step) IsQualifiedName() bool {
	return s.Axis == AxisChild && s.Local != Wildcard && s.Local != ""
}

// QName returns "prefix:local" or just "local".
func (s Step) QName() string {
	if s.Prefix == "" {
		return s.Local
	}

	return s.Prefix + ":" + s.Local
}

// String returns the abbreviated form of the step.
func (s Step) String() string {
	switch s.Axis {
	case AxisSelf:
		return "."
	case AxisParent:
		return ".."
	case AxisAttribute:
		return "@" + s.QName()
	}

	var b strings.Builder

	b.WriteString(s.QName())

	for _, p := range s.Predicates {
		b.WriteString(p.String())
	}

	return b.String()
}

// Path is a parsed relative path expression.
type Path struct {
	Steps []Step
}

// String re-serializes the path in abbreviated syntax.
func (p Path) String() string {
	parts := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		parts[i] = s.String()
	}

	return strings.Join(parts, "/")
}

// Parse parses a relative path expression.
func Parse(expr string) (Path, error) {
	if strings.TrimSpace(expr) == "" {
		return Path{}, errors.New("empty path")
	}

	if strings.HasPrefix(expr, "/") {
		return Path{}, fmt.Errorf("invalid path %q: absolute paths are not supported", expr)
	}

	raw, err := splitSteps(expr)
	if err != nil {
		return Path{}, fmt.Errorf("invalid path %q: %w", expr, err)
	}

	steps := make([]Step, 0, len(raw))

	for _, part := range raw {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty step", expr)
		}

		step, err := parseStep(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", expr, err)
		}

		steps = append(steps, step)
	}

	return Path{Steps: steps}, nil
}

// MustParse is like Parse but panics on error. Intended for constants in tests.
func MustParse(expr string) Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return p
}

// splitSteps splits on '/' outside of predicates and quoted literals.
func splitSteps(expr string) ([]string, error) {
	var (
		parts   []string
		depth   int
		inQuote rune
		start   int
	)

	for i, r := range expr {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			}
		case r == '\'' || r == '"':
			inQuote = r
		case r == '[':
			depth++
		case r == ']':
			depth--
			if depth < 0 {
				return nil, errors.New("unbalanced ']'")
			}
		case r == '/' && depth == 0:
			parts = append(parts, expr[start:i])
			start = i + 1
		}
	}

	if inQuote != 0 {
		return nil, errors.New("unterminated string literal")
	}

	if depth != 0 {
		return nil, errors.New("unbalanced '['")
	}

	return append(parts, expr[start:]), nil
}

func parseStep(part string) (Step, error) {
	switch part {
	case ".":
		return Step{Axis: AxisSelf}, nil
	case "..":
		return Step{Axis: AxisParent}, nil
	}

	if strings.HasPrefix(part, "@") {
		prefix, local, err := parseQName(part[1:])
		if err != nil {
			return Step{}, err
		}

		if local == Wildcard {
			return Step{}, errors.New("attribute wildcards are not supported")
		}

		return Step{Axis: AxisAttribute, Prefix: prefix, Local: local}, nil
	}

	nameTest := part
	rest := ""

	if i := strings.IndexByte(part, '['); i >= 0 {
		nameTest, rest = part[:i], part[i:]
	}

	prefix, local, err := parseQName(nameTest)
	if err != nil {
		return Step{}, err
	}

	step := Step{Axis: AxisChild, Prefix: prefix, Local: local}

	for rest != "" {
		end := predicateEnd(rest)
		if end < 0 {
			return Step{}, fmt.Errorf("malformed predicate %q", rest)
		}

		pred, err := parsePredicate(rest[1:end])
		if err != nil {
			return Step{}, err
		}

		step.Predicates = append(step.Predicates, pred)
		rest = rest[end+1:]
	}

	return step, nil
}

// predicateEnd returns the index of the ']' closing the predicate that
// starts at s[0], or -1.
func predicateEnd(s string) int {
	if s == "" || s[0] != '[' {
		return -1
	}

	var inQuote rune

	for i, r := range s {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			}
		case r == '\'' || r == '"':
			inQuote = r
		case r == ']':
			return i
		}
	}

	return -1
}

func parsePredicate(body string) (Predicate, error) {
	body = strings.TrimSpace(body)

	open := strings.Index(body, "()")
	if open < 0 {
		return Predicate{}, fmt.Errorf("unsupported predicate [%s]", body)
	}

	fn := strings.TrimSpace(body[:open])
	if fn != FuncLocalName && fn != FuncNamespaceURI {
		return Predicate{}, fmt.Errorf("unsupported function %q", fn)
	}

	rest := strings.TrimSpace(body[open+2:])
	negate := false

	switch {
	case strings.HasPrefix(rest, "!="):
		negate = true
		rest = rest[2:]
	case strings.HasPrefix(rest, "="):
		rest = rest[1:]
	default:
		return Predicate{}, fmt.Errorf("expected comparison in predicate [%s]", body)
	}

	lit, err := unquote(strings.TrimSpace(rest))
	if err != nil {
		return Predicate{}, err
	}

	return Predicate{Func: fn, Negate: negate, Literal: lit}, nil
}

func parseQName(s string) (prefix, local string, err error) {
	if s == Wildcard {
		return "", Wildcard, nil
	}

	prefix, local, found := strings.Cut(s, ":")
	if !found {
		prefix, local = "", s
	} else if !isName(prefix) {
		return "", "", fmt.Errorf("invalid prefix %q", prefix)
	}

	if local != Wildcard && !isName(local) {
		return "", "", fmt.Errorf("invalid name %q", s)
	}

	return prefix, local, nil
}

// isName is a permissive NCName check.
func isName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}

			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}

	return true
}

func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}

	return "'" + s + "'"
}

func unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("expected string literal, got %q", s)
	}

	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", fmt.Errorf("expected string literal, got %q", s)
	}

	return s[1 : len(s)-1], nil
}
