package xmlnode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.FullName()
	}

	return out
}

func TestSearch(t *testing.T) {
	root := mustParse(t, `<root xmlns:a="urn:a" xmlns:b="urn:b" xmlns:xsi="urn:xsi" id="r" xsi:type="t">
  <item>1</item>
  <a:item>2</a:item>
  <b:item>3</b:item>
  <group><item>4</item><item>5</item></group>
  <group><item>6</item></group>
</root>`)

	tests := []struct {
		name       string
		path       string
		namespaces map[string]string
		expected   []string
	}{
		{"unqualified child", "item", nil, []string{"item"}},
		{"declared prefix", "a:item", nil, []string{"a:item"}},
		{"mapped prefix", "x:item", map[string]string{"x": "urn:b"}, []string{"b:item"}},
		{"literal unknown prefix", "zz:item", nil, nil},
		{"nested", "group/item", nil, []string{"item", "item", "item"}},
		{"self", ".", nil, []string{"root"}},
		{"wildcard", "*", nil, []string{"item", "a:item", "b:item", "group", "group"}},
		{
			"qualified wildcard",
			"*[local-name()='item'][namespace-uri()!='']",
			nil,
			[]string{"a:item", "b:item"},
		},
		{"attribute", "@id", nil, []string{"id"}},
		{"prefixed attribute", "@xsi:type", nil, []string{"xsi:type"}},
		{"namespace declarations hidden", "@xmlns", nil, nil},
		{"parent dedup", "group/item/..", nil, []string{"group", "group"}},
		{"missing", "nothing", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Search(root, tt.path, tt.namespaces)
			require.NoError(t, err)
			assert.Equal(t, len(tt.expected), len(got))

			if len(tt.expected) > 0 {
				assert.Equal(t, tt.expected, names(got))
			}
		})
	}
}

func TestSearch_DefaultNamespace(t *testing.T) {
	root := mustParse(t, `<feed xmlns="http://www.w3.org/2005/Atom"><title>T</title><entry><title>E</title></entry></feed>`)

	got, err := Search(root, "xmlns:title", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "T", got[0].Content())

	got, err = Search(root, "xmlns:entry/xmlns:title", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "E", got[0].Content())

	// unprefixed steps only see elements without a namespace
	got, err = Search(root, "title", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_Errors(t *testing.T) {
	root := mustParse(t, `<a/>`)

	_, err := Search(nil, "a", nil)
	require.Error(t, err)

	_, err = Search(root, "", nil)
	require.Error(t, err)

	_, err = Search(root, "/absolute", nil)
	require.Error(t, err)
}
