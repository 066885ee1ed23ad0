package assign

import (
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type address struct {
	City string
	Zip  int
}

type person struct {
	Name     string
	Age      int
	Height   float32
	Active   bool
	Born     time.Time
	Timeout  time.Duration
	Tags     []string
	Scores   map[string]int
	Home     *address
	Work     address
	IP       net.IP
	Anything any
	hidden   string
}

type orderedMap struct {
	keys   []any
	values map[any]any
}

func (m orderedMap) Keys() []any { return m.keys }

func (m orderedMap) Get(k any) (any, bool) {
	v, ok := m.values[k]
	return v, ok
}

type list []any

func (l list) Items() []any { return l }

type getter map[string]any

func (g getter) Field(name string) (any, bool) {
	v, ok := g[name]
	return v, ok
}

type stamp struct{ label string }

func (s stamp) AssignTo(dst reflect.Value) error {
	dst.Set(reflect.ValueOf("stamped:" + s.label))
	return nil
}

func TestSet_Primitives(t *testing.T) {
	var p person

	require.NoError(t, Set(&p, "Name", "Ann"))
	require.NoError(t, Set(&p, "Age", " 42 "))
	require.NoError(t, Set(&p, "Height", "1.75"))
	require.NoError(t, Set(&p, "Active", "true"))
	require.NoError(t, Set(&p, "Born", "2001-02-03T04:05:06Z"))
	require.NoError(t, Set(&p, "Timeout", "1m30s"))
	require.NoError(t, Set(&p, "IP", "10.0.0.1"))
	require.NoError(t, Set(&p, "Anything", 7))

	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, 42, p.Age)
	assert.InDelta(t, 1.75, p.Height, 1e-6)
	assert.True(t, p.Active)
	assert.Equal(t, time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC), p.Born)
	assert.Equal(t, 90*time.Second, p.Timeout)
	assert.Equal(t, "10.0.0.1", p.IP.String())
	assert.Equal(t, 7, p.Anything)
}

func TestSet_Containers(t *testing.T) {
	var p person

	require.NoError(t, Set(&p, "Tags", []any{"a", "b"}))
	require.NoError(t, Set(&p, "Scores", orderedMap{
		keys:   []any{"x", "y"},
		values: map[any]any{"x": "1", "y": 2},
	}))
	require.NoError(t, Set(&p, "Home", map[string]any{"City": "Oslo", "Zip": "150"}))
	require.NoError(t, Set(&p, "Work", orderedMap{
		keys:   []any{"City", "Unknown"},
		values: map[any]any{"City": "Bergen", "Unknown": 1},
	}))

	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, p.Scores)
	require.NotNil(t, p.Home)
	assert.Equal(t, address{City: "Oslo", Zip: 150}, *p.Home)
	assert.Equal(t, "Bergen", p.Work.City)

	require.NoError(t, Set(&p, "Tags", list{"c"}))
	assert.Equal(t, []string{"c"}, p.Tags)

	require.NoError(t, Set(&p, "Tags", "single"))
	assert.Equal(t, []string{"single"}, p.Tags)

	require.NoError(t, Set(&p, "Tags", nil))
	assert.Nil(t, p.Tags)
}

func TestSet_Assigner(t *testing.T) {
	var p person

	require.NoError(t, Set(&p, "Name", stamp{label: "x"}))
	assert.Equal(t, "stamped:x", p.Name)
}

func TestSet_Errors(t *testing.T) {
	var p person

	require.Error(t, Set(p, "Name", "x"))
	require.Error(t, Set(&p, "Missing", "x"))
	require.Error(t, Set(&p, "hidden", "x"))
	require.Error(t, Set(&p, "Age", "forty"))
	require.Error(t, Set(&p, "Active", 3))
	require.ErrorIs(t, Set(nil, "Name", "x"), ErrNotSettable)
}

func TestSet_Map(t *testing.T) {
	m := map[string]int{}
	require.NoError(t, Set(m, "a", "5"))
	assert.Equal(t, 5, m["a"])

	var nilMap map[string]any
	require.NoError(t, Set(&nilMap, "b", "x"))
	assert.Equal(t, "x", nilMap["b"])
}

func TestGet(t *testing.T) {
	p := &person{Name: "Ann", hidden: "h"}

	tests := []struct {
		name     string
		src      any
		field    string
		expected any
		found    bool
	}{
		{"struct pointer", p, "Name", "Ann", true},
		{"struct value", *p, "Name", "Ann", true},
		{"unexported", p, "hidden", nil, false},
		{"missing", p, "Nope", nil, false},
		{"map", map[string]any{"a": 1}, "a", 1, true},
		{"typed map", map[string]string{"a": "b"}, "a", "b", true},
		{"getter", getter{"k": "v"}, "k", "v", true},
		{"mapping", orderedMap{keys: []any{"k"}, values: map[any]any{"k": 2}}, "k", 2, true},
		{"nil", nil, "a", nil, false},
		{"nil pointer", (*person)(nil), "Name", nil, false},
		{"scalar", 5, "a", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Get(tt.src, tt.field)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLookup(t *testing.T) {
	p := &person{Name: "Ann", hidden: "h"}

	v, err := Lookup(p, "Name")
	require.NoError(t, err)
	assert.Equal(t, "Ann", v)

	for name, src := range map[string]any{
		"map":         map[string]any{},
		"getter":      getter{},
		"nil":         nil,
		"nil pointer": (*person)(nil),
		"scalar":      5,
	} {
		v, err := Lookup(src, "Nope")
		require.NoError(t, err, name)
		assert.Nil(t, v, name)
	}

	_, err = Lookup(p, "Nmae")
	require.ErrorIs(t, err, ErrNoField)

	_, err = Lookup(*p, "hidden")
	require.ErrorIs(t, err, ErrNoField)
}

func TestIndirect(t *testing.T) {
	n := 3
	pn := &n

	assert.Equal(t, 3, Indirect(&pn).Interface())
	assert.False(t, Indirect((*int)(nil)).IsValid())
	assert.False(t, Indirect(nil).IsValid())
}
