package xpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespacify(t *testing.T) {
	tests := []struct {
		name string
		expr string
		ns   string
		want string
	}{
		{"no namespace", "foo", "", "foo"},
		{"single step", "foo", "ns1", "ns1:foo"},
		{"nested steps", "items/item", "ns1", "ns1:items/ns1:item"},
		{"attribute untouched", "@id", "ns1", "@id"},
		{"wrapper then attribute", "wrap/@id", "ns1", "ns1:wrap/@id"},
		{"already prefixed", "other:foo/bar", "ns1", "other:foo/ns1:bar"},
		{"self and parent", "./../foo", "ns1", "./../ns1:foo"},
		{"wildcard step", "*", "ns1", "*"},
		{"default prefix", "name", "xmlns", "xmlns:name"},
		{
			"wildcard namespace",
			"foo",
			"*",
			"*[local-name()='foo'][namespace-uri()!='']",
		},
		{
			"wildcard namespace nested",
			"items/item",
			"*",
			"*[local-name()='items'][namespace-uri()!='']/*[local-name()='item'][namespace-uri()!='']",
		},
		{"wildcard namespace leaves wildcard", "*", "*", "*"},
		{"wildcard namespace leaves attribute", "@id", "*", "@id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Namespacify(tt.expr, tt.ns)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamespacify_InvalidPath(t *testing.T) {
	_, err := Namespacify("a//b", "ns")
	assert.Error(t, err)
}

func TestQualify_DoesNotMutateInput(t *testing.T) {
	p := MustParse("foo[local-name()='foo']/bar")
	before := p.String()

	q := Qualify(p, "*")

	assert.Equal(t, before, p.String())
	assert.NotEqual(t, before, q.String())
}
