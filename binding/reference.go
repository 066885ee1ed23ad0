package binding

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"xmlbind/internal/assign"
	"xmlbind/internal/xpath"
	"xmlbind/naming"
	"xmlbind/xmlnode"
)

// Reference binds one descriptor to one owning instance for the duration of
// a decode or encode. It remembers which wrapper convention the last read
// matched so a following write uses the same one. A Reference is not safe
// for concurrent use.
type Reference struct {
	desc     *Descriptor
	cfg      Config
	instance any
	strategy strategy
	log      *zap.Logger

	// hash bindings only
	key, value *Reference

	defaultNamespace string
	autoWrapped      bool
}

// NewReference validates desc and binds it to instance.
func NewReference(desc *Descriptor, cfg Config, instance any) (*Reference, error) {
	if desc == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrInvalidDescriptor)
	}

	if err := desc.Validate(); err != nil {
		return nil, err
	}

	r := &Reference{
		desc:     desc,
		cfg:      cfg,
		instance: instance,
		strategy: strategyFor(desc.Kind),
		log:      cfg.logger().With(zap.String("accessor", desc.label())),
	}

	if desc.Kind == KindHash {
		var err error
		if r.key, err = NewReference(desc.Hash.Key, cfg, instance); err != nil {
			return nil, err
		}

		if r.value, err = NewReference(desc.Hash.Value, cfg, instance); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Descriptor returns the bound descriptor.
func (r *Reference) Descriptor() *Descriptor { return r.desc }

// AutoWrapped reports whether the last read matched through the pluralized
// auto-wrapper.
func (r *Reference) AutoWrapped() bool { return r.autoWrapped }

// Name is the explicit name verbatim, or the raw name passed through the
// naming convention.
func (r *Reference) Name() string {
	if r.desc.NameExplicit {
		return r.desc.Name
	}

	return r.conventionize(r.desc.rawName())
}

func (r *Reference) conventionize(what string) string {
	return naming.Conventionize(what, r.cfg.Convention)
}

// XPathName is the namespace-qualified query for the binding's own nodes.
func (r *Reference) XPathName() string {
	switch r.desc.Kind {
	case KindAttribute:
		return "@" + r.Name()
	case KindHash:
		return r.namespacify(r.pairName())
	default:
		return r.namespacify(r.Name())
	}
}

// namespace resolves the prefix to qualify with: the descriptor's, the
// class's, then the default namespace seen at the last queried node.
func (r *Reference) namespace() string {
	if r.desc.NoNamespace {
		return ""
	}

	for _, ns := range []string{r.desc.Namespace, r.cfg.Namespace, r.defaultNamespace} {
		if ns != "" {
			return ns
		}
	}

	return ""
}

func (r *Reference) namespacify(what string) string {
	ns := r.namespace()
	if ns == "" || isBlank(what) {
		return what
	}

	out, err := xpath.Namespacify(what, ns)
	if err != nil {
		r.log.Warn("leaving path unqualified", zap.String("path", what), zap.String("namespace", ns), zap.Error(err))
		return what
	}

	return out
}

// writePrefix is the prefix given to created elements. The wildcard and the
// default namespace leave names bare.
func (r *Reference) writePrefix() string {
	ns := r.namespace()
	if ns == xpath.Wildcard || ns == xmlnode.DefaultPrefix {
		return ""
	}

	return ns
}

// qualify is the element name counterpart of namespacify, used when
// creating nodes.
func (r *Reference) qualify(name string) string {
	ns := r.writePrefix()
	if ns == "" || isBlank(name) || strings.Contains(name, ":") {
		return name
	}

	return ns + ":" + name
}

func (r *Reference) xpath() string {
	if r.desc.Wrapper != "" {
		return r.namespacify(r.desc.Wrapper) + "/" + r.XPathName()
	}

	return r.XPathName()
}

func (r *Reference) plural() string {
	return r.conventionize(r.cfg.inflector().Pluralize(r.desc.rawName()))
}

func (r *Reference) autoWrapper() string {
	return r.namespacify(r.plural())
}

func (r *Reference) autoXPath() string {
	if !r.desc.Array {
		return ""
	}

	return r.autoWrapper() + "/" + r.XPathName()
}

func (r *Reference) several() bool {
	return r.desc.Array || r.desc.Kind == KindHash
}

func (r *Reference) pairName() string {
	if r.desc.Hash != nil && r.desc.Hash.Wrapper != "" {
		return r.desc.Hash.Wrapper
	}

	return r.Name()
}

// wrapper is the container path used for writes.
func (r *Reference) wrapper() string {
	if r.autoWrapped {
		return r.qualify(r.plural())
	}

	if r.desc.Wrapper == "" {
		return ""
	}

	segments := strings.Split(r.desc.Wrapper, "/")
	for i, s := range segments {
		segments[i] = r.qualify(s)
	}

	return strings.Join(segments, "/")
}

// wrap returns the node values are written into, reusing existing children
// along the wrapper path unless forceCreate is set.
func (r *Reference) wrap(n *xmlnode.Node, forceCreate bool) *xmlnode.Node {
	w := r.wrapper()
	if w == "" || n.FullName() == w {
		return n
	}

	for _, segment := range strings.Split(w, "/") {
		var child *xmlnode.Node
		if !forceCreate {
			child = n.Child(segment)
		}

		if child == nil {
			child = xmlnode.AddNode(n, segment)
		}

		n = child
	}

	return n
}

func (r *Reference) missing(n *xmlnode.Node) error {
	r.log.Debug("required element missing", zap.String("name", r.Name()))
	return &RequiredElementMissingError{Name: r.Name(), Node: n, Accessor: r.desc.Accessor}
}

// absent is the value of a binding whose query matched nothing.
func (r *Reference) absent() any {
	if r.desc.Default != nil {
		return r.desc.Default
	}

	if r.several() {
		return []any{}
	}

	return nil
}

// nodesIn queries the binding's nodes under n and extracts each match. Array
// bindings without an explicit wrapper retry once through the pluralized
// auto-wrapper when the primary query finds nothing.
func (r *Reference) nodesIn(n *xmlnode.Node, extract func(*xmlnode.Node) (any, error)) (any, error) {
	r.defaultNamespace = xmlnode.DefaultNamespace(n)

	vals, err := xmlnode.Search(n, r.xpath(), r.cfg.Namespaces)
	if err != nil {
		return nil, err
	}

	if r.several() && len(vals) == 0 && r.desc.Wrapper == "" {
		if auto := r.autoXPath(); auto != "" {
			if vals, err = xmlnode.Search(n, auto, r.cfg.Namespaces); err != nil {
				return nil, err
			}

			r.autoWrapped = len(vals) > 0
			if r.autoWrapped {
				r.log.Debug("matched through auto-wrapper", zap.String("path", auto))
			}
		}
	}

	if len(vals) == 0 {
		if r.desc.Required && r.desc.Default == nil {
			return nil, r.missing(n)
		}

		return r.absent(), nil
	}

	if !r.several() {
		return extract(vals[0])
	}

	out := make([]any, 0, len(vals))

	for _, v := range vals {
		x, err := extract(v)
		if err != nil {
			return nil, err
		}

		out = append(out, x)
	}

	return out, nil
}

// ValueIn extracts the binding's value from input: a *xmlnode.Node, an etree
// element or document, or raw XML. Defaults replace absent or blank values,
// transforms run in order and the result is frozen when configured.
func (r *Reference) ValueIn(input any) (any, error) {
	n, err := xmlnode.From(input)
	if err != nil {
		return nil, err
	}

	v, err := r.strategy.fetch(r, n)
	if err != nil {
		return nil, err
	}

	if r.desc.Default != nil && isBlank(v) {
		r.log.Debug("using default", zap.Any("default", r.desc.Default))
		v = r.desc.Default
	}

	if pp, ok := r.strategy.(postProcessor); ok {
		v, err = pp.postProcess(r, v)
	} else {
		v, err = r.apply(v)
	}

	if err != nil {
		return nil, err
	}

	if v != nil && r.desc.Frozen {
		v = deepFreeze(v)
	}

	return v, nil
}

func (r *Reference) apply(v any) (any, error) {
	for _, t := range r.desc.Transforms {
		var err error
		if v, err = t(v); err != nil {
			return nil, fmt.Errorf("%s: %w", r.desc.Accessor, err)
		}
	}

	return v, nil
}

// ToXML reads the field from instance (the bound instance when nil) and
// applies the serialization transform, if any. A missing map entry reads as
// nil; a struct without the accessor field is an error.
func (r *Reference) ToXML(instance any) (any, error) {
	if instance == nil {
		instance = r.instance
	}

	v, err := assign.Lookup(instance, r.desc.Accessor)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	if r.desc.ToXML == nil {
		return v, nil
	}

	out, err := r.desc.ToXML(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	return out, nil
}

// UpdateXML writes value into n and returns n. A nil value writes nothing.
// Array writes are not transactional: on error, earlier siblings stay.
func (r *Reference) UpdateXML(n *xmlnode.Node, value any) (*xmlnode.Node, error) {
	if n == nil {
		return nil, fmt.Errorf("%s: update on nil node", r.desc.label())
	}

	if value == nil {
		return n, nil
	}

	if err := r.strategy.update(r, n, value); err != nil {
		return nil, err
	}

	return n, nil
}
