package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookSchema = `types:
  - name: Book
    tag: book
    fields:
      - accessor: Title
        name: title
        required: true
      - accessor: Year
        from: "@year"
        transforms: int
`

const bookXML = `<book year="1965"><title>Dune</title></book>`

// workdir changes into a fresh directory holding the given files.
func workdir(t *testing.T, files map[string]string) {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestCheck(t *testing.T) {
	workdir(t, map[string]string{
		"book.yaml": bookSchema,
		"bad.yaml": `types:
  - name: Book
    fields:
      - accessor: Year
        transforms: intt
`,
	})

	out, err := run(t, "", "check", "--schema", "book.yaml")
	require.NoError(t, err)
	assert.Equal(t, "book.yaml: 1 type(s), 0 warning(s)\n", out)

	out, err = run(t, "", "check", "-s", "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml: 1 error(s)")
	assert.Contains(t, out, "error: ")
	assert.Contains(t, out, "[unknown_transform]")
	assert.Contains(t, out, "did you mean int")
}

func TestDecode(t *testing.T) {
	workdir(t, map[string]string{
		"book.yaml": bookSchema,
		"book.xml":  bookXML,
	})

	out, err := run(t, "", "decode", "-s", "book.yaml", "--type", "Book", "book.xml")
	require.NoError(t, err)
	assert.Equal(t, "Title: Dune\nYear: 1965\n", out)

	// the only type is picked and the document is read from stdin
	out, err = run(t, bookXML, "decode", "-s", "book.yaml", "-")
	require.NoError(t, err)
	assert.Equal(t, "Title: Dune\nYear: 1965\n", out)

	_, err = run(t, `<book year="1965"/>`, "decode", "-s", "book.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode Book")
}

func TestEncode(t *testing.T) {
	workdir(t, map[string]string{
		"book.yaml":   bookSchema,
		"record.yaml": "Title: Dune\nYear: 1965\n",
	})

	out, err := run(t, "", "encode", "-s", "book.yaml", "record.yaml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`), out)
	assert.Contains(t, out, "<book year=\"1965\">\n  <title>Dune</title>\n</book>")
}

func TestEncode_ConfigFile(t *testing.T) {
	workdir(t, map[string]string{
		"book.yaml":    bookSchema,
		"xmlbind.yaml": "schema: book.yaml\ndeclaration: false\n",
	})

	out, err := run(t, "Title: Dune\nYear: 1965\n", "encode", "--indent", "-1")
	require.NoError(t, err)
	assert.Equal(t, bookXML+"\n", out)
}

func TestLookupErrors(t *testing.T) {
	workdir(t, map[string]string{
		"two.yaml": `types:
  - name: Book
    fields: [{accessor: title}]
  - name: Author
    fields: [{accessor: name}]
`,
	})

	_, err := run(t, bookXML, "decode", "-s", "two.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pick one with --type: Book, Author")

	_, err = run(t, bookXML, "decode", "-s", "two.yaml", "-t", "Bok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown type "Bok" (did you mean Book?)`)

	_, err = run(t, bookXML, "decode")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema given")
}
