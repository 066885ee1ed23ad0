package binding

import (
	"fmt"

	"xmlbind/xmlnode"
)

// hashStrategy reads every matched pair element through the nested key and
// value references and folds the pairs into a *Hash.
type hashStrategy struct{}

func (hashStrategy) fetch(r *Reference, n *xmlnode.Node) (any, error) {
	return r.nodesIn(n, func(node *xmlnode.Node) (any, error) {
		k, err := r.key.ValueIn(node)
		if err != nil {
			return nil, err
		}

		v, err := r.value.ValueIn(node)
		if err != nil {
			return nil, err
		}

		return Pair{Key: k, Value: v}, nil
	})
}

// postProcess runs the transforms on each pair, then folds.
func (hashStrategy) postProcess(r *Reference, v any) (any, error) {
	matched, ok := v.([]any)
	if !ok {
		// a configured default is used as is
		return v, nil
	}

	pairs := make([]Pair, 0, len(matched))

	for _, m := range matched {
		out, err := r.apply(m)
		if err != nil {
			return nil, err
		}

		p, ok := out.(Pair)
		if !ok {
			return nil, fmt.Errorf("%s: hash transform returned %T, want binding.Pair", r.desc.Accessor, out)
		}

		pairs = append(pairs, p)
	}

	return fold(pairs), nil
}

func (hashStrategy) update(r *Reference, n *xmlnode.Node, value any) error {
	pairs, err := pairsOf(value)
	if err != nil {
		return fmt.Errorf("%s: %w", r.desc.Accessor, err)
	}

	w := r.wrap(n, false)
	name := r.qualify(r.pairName())

	for _, p := range pairs {
		node := xmlnode.AddNode(w, name)

		if _, err := r.key.UpdateXML(node, p.Key); err != nil {
			return err
		}

		if _, err := r.value.UpdateXML(node, p.Value); err != nil {
			return err
		}
	}

	return nil
}
