package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlbind/internal/diagnostic"
)

func find(d *diagnostic.Diagnostics, code, field string) *diagnostic.Diagnostic {
	for _, x := range d.All() {
		if x.Code == code && x.Field == field {
			return &x
		}
	}

	return nil
}

func TestValidate_Valid(t *testing.T) {
	f, err := Parse([]byte(personSchema))
	require.NoError(t, err)

	res := Validate(f, nil)
	assert.True(t, res.IsValid(), res.Error())
	assert.Empty(t, res.Warnings)
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil, nil)
	require.True(t, res.HasErrors())
	assert.Equal(t, "schema_is_nil", res.Errors[0].Code)
}

func TestValidate_Diagnostics(t *testing.T) {
	f, err := Parse([]byte(`
convention: undescore
namespace: ghost
types:
  - name: Person
    fields:
      - accessor: Name
        transforms: [uper]
      - accessor: Name
      - from: "."
      - accessor: Body
        from: "."
        array: true
      - accessor: Home
        as: Adress
      - accessor: Mood
        kind: attribut
      - accessor: Phones
        kind: hash
      - accessor: Nick
        required: true
        default: anon
      - accessor: Code
        from: "@code"
        kind: text
      - accessor: Title
        from: title
        name: heading
      - accessor: Label
        from: "*"
        kind: attribute
      - accessor: Box
        in: "a//b"
  - name: Address
  - name: Person
  - fields: []
`))
	require.NoError(t, err)

	res := Validate(f, NewTransformRegistry())
	require.True(t, res.HasErrors())

	tests := []struct {
		code, field string
		suggestions []string
	}{
		{"unknown_convention", "", []string{"underscore"}},
		{"duplicate_type", "", nil},
		{"missing_type_name", "", nil},
		{"unknown_transform", "Name", []string{"upper"}},
		{"duplicate_field", "Name", nil},
		{"missing_accessor", ".", nil},
		{"mode_with_array", "Body", nil},
		{"unknown_type", "Home", []string{"Address"}},
		{"unknown_kind", "Mood", []string{"attribute"}},
		{"missing_hash", "Phones", nil},
		{"conflicting_kind", "Code", nil},
		{"conflicting_name", "Title", nil},
		{"invalid_mode", "Label", nil},
		{"invalid_wrapper", "Box", nil},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			d := find(res, tt.code, tt.field)
			require.NotNil(t, d, res.Error())
			assert.Equal(t, diagnostic.DiagnosticError, d.Severity)

			if tt.suggestions != nil {
				assert.Equal(t, tt.suggestions, d.Suggestions)
			}
		})
	}

	assert.NotNil(t, find(res, "undeclared_namespace", ""))
	assert.NotNil(t, find(res, "required_with_default", "Nick"))
	assert.NotNil(t, find(res, "empty_type", ""))

	for _, w := range res.Warnings {
		assert.Equal(t, diagnostic.DiagnosticWarning, w.Severity)
	}
}

func TestValidate_HashParts(t *testing.T) {
	f, err := Parse([]byte(`
namespaces: {x: "urn:x"}
types:
  - name: Dict
    fields:
      - accessor: Entries
        to_xml: upper
        transforms: lowr
        namespace: x
        hash:
          key: {from: "@k", kind: hash}
          value: {transforms: nope}
`))
	require.NoError(t, err)

	res := Validate(f, nil)

	assert.NotNil(t, find(res, "unsupported_to_xml", "Entries"))
	assert.NotNil(t, find(res, "unknown_transform", "Entries"))
	assert.NotNil(t, find(res, "conflicting_kind", "@k"))
	assert.NotNil(t, find(res, "missing_name", ""))
	assert.NotNil(t, find(res, "unknown_transform", ""))
	assert.Nil(t, find(res, "undeclared_namespace", "Entries"))
}

func TestCompile_Invalid(t *testing.T) {
	f, err := Parse([]byte(`
types:
  - name: A
    fields:
      - accessor: X
        transforms: nope
`))
	require.NoError(t, err)

	_, err = Compile(f, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid schema")
	assert.Contains(t, err.Error(), "unknown_transform")
}
