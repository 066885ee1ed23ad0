package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind/binding"
)

func TestFieldDef_Shorthand(t *testing.T) {
	tests := []struct {
		from     string
		kind     binding.Kind
		mode     binding.Mode
		name     string
		explicit bool
	}{
		{"", binding.KindText, binding.ModeElement, "Given", false},
		{"@id", binding.KindAttribute, binding.ModeElement, "id", true},
		{".", binding.KindText, binding.ModeContent, "Given", false},
		{"*", binding.KindText, binding.ModeName, "Given", false},
		{"TitleText", binding.KindText, binding.ModeElement, "TitleText", true},
	}

	for _, tt := range tests {
		t.Run(tt.from, func(t *testing.T) {
			fd := FieldDef{Accessor: "X", Name: "Given", From: tt.from}

			kind, err := fd.BindingKind()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.mode, fd.Mode())

			name, explicit := fd.WireName()
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.explicit, explicit)
		})
	}
}

func TestFieldDef_BindingKind(t *testing.T) {
	kind, err := (&FieldDef{Hash: &HashDef{}}).BindingKind()
	require.NoError(t, err)
	assert.Equal(t, binding.KindHash, kind)

	kind, err = (&FieldDef{As: "Address"}).BindingKind()
	require.NoError(t, err)
	assert.Equal(t, binding.KindObject, kind)

	kind, err = (&FieldDef{Kind: "Namespace"}).BindingKind()
	require.NoError(t, err)
	assert.Equal(t, binding.KindNamespace, kind)

	_, err = (&FieldDef{Kind: "element"}).BindingKind()
	require.Error(t, err)
}

func TestFieldDef_Label(t *testing.T) {
	assert.Equal(t, "Name", (&FieldDef{Accessor: "Name", From: "@n"}).Label())
	assert.Equal(t, "@n", (&FieldDef{From: "@n"}).Label())
}
