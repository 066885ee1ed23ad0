package binding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestList(t *testing.T) {
	l := NewList("a")
	require.NoError(t, l.Append("b", "c"))
	require.NoError(t, l.Set(0, "z"))
	require.Error(t, l.Set(5, "x"))

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "z", l.At(0))

	items := l.Items()
	items[1] = "changed"
	assert.Equal(t, "b", l.At(1))

	var seen []any
	for _, v := range l.All() {
		seen = append(seen, v)
	}

	assert.Equal(t, []any{"z", "b", "c"}, seen)
}

func TestHash(t *testing.T) {
	h := NewHash()
	require.NoError(t, h.Set("b", 1))
	require.NoError(t, h.Set("a", 2))
	require.NoError(t, h.Set("b", 3))

	assert.Equal(t, []any{"b", "a"}, h.Keys())
	assert.Equal(t, 2, h.Len())

	v, ok := h.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	require.NoError(t, h.Delete("b"))
	require.NoError(t, h.Delete("missing"))
	assert.Equal(t, []any{"a"}, h.Keys())

	// uncomparable keys fall back to their text
	require.NoError(t, h.Set([]string{"x"}, "slice"))
	v, ok = h.Get("[x]")
	assert.True(t, ok)
	assert.Equal(t, "slice", v)

	var zero Hash
	require.NoError(t, zero.Set("k", "v"))
	assert.Equal(t, 1, zero.Len())
}

func TestFold(t *testing.T) {
	h := fold([]Pair{{"a", "1"}, {"a", "2"}, {"b", "3"}})

	assert.Equal(t, []any{"a", "b"}, h.Keys())

	a, _ := h.Get("a")
	assert.Equal(t, []any{"1", "2"}, a)

	b, _ := h.Get("b")
	assert.Equal(t, "3", b)
}

type freezable struct{ frozen bool }

func (f *freezable) Freeze() { f.frozen = true }

func TestDeepFreeze(t *testing.T) {
	inner := &freezable{}
	nested := NewHash()
	require.NoError(t, nested.Set("k", []any{"x"}))

	v := deepFreeze([]any{inner, nested, "s"})

	l, ok := v.(*List)
	require.True(t, ok)
	assert.True(t, l.Frozen())
	assert.True(t, inner.frozen)
	assert.True(t, nested.Frozen())

	k, _ := nested.Get("k")
	assert.True(t, k.(*List).Frozen())

	assert.Equal(t, "s", deepFreeze("s"))
}

func TestHash_MarshalYAML(t *testing.T) {
	h := NewHash()
	require.NoError(t, h.Set("zeta", "1"))
	require.NoError(t, h.Set("alpha", NewList("x", "w")))

	out, err := yaml.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "zeta: \"1\"\nalpha:\n    - x\n    - w\n", string(out))
}
