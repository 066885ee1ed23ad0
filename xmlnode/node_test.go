package xmlnode

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const library = `<library xmlns:bk="http://example.com/books" id="main">
  <name>City Library</name>
  <bk:book isbn="123" bk:lang="en"><title>Go</title></bk:book>
  <bk:book isbn="456"><title>XML <em>in depth</em></title></bk:book>
  <shelf/>
</library>`

func mustParse(t *testing.T, s string) *Node {
	t.Helper()

	n, err := ParseString(s)
	require.NoError(t, err)

	return n
}

func TestParse(t *testing.T) {
	root := mustParse(t, library)

	assert.Equal(t, "library", root.Name())
	assert.Equal(t, "library", root.FullName())
	assert.Nil(t, root.Parent())
	assert.Len(t, root.Children(), 4)

	id, ok := root.Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "main", id)

	_, ok = root.Attr("missing")
	assert.False(t, ok)
}

func TestParse_Errors(t *testing.T) {
	_, err := ParseString("")
	require.Error(t, err)

	_, err = ParseString("<open>")
	require.Error(t, err)
}

func TestFrom(t *testing.T) {
	root := mustParse(t, library)

	same, err := From(root)
	require.NoError(t, err)
	assert.Same(t, root, same)

	fromElem, err := From(root.Element())
	require.NoError(t, err)
	assert.Equal(t, "library", fromElem.Name())

	doc := etree.NewDocument()
	doc.CreateElement("solo")

	fromDoc, err := From(doc)
	require.NoError(t, err)
	assert.Equal(t, "solo", fromDoc.Name())

	fromBytes, err := From([]byte("<b/>"))
	require.NoError(t, err)
	assert.Equal(t, "b", fromBytes.Name())

	fromReader, err := From(strings.NewReader("<r/>"))
	require.NoError(t, err)
	assert.Equal(t, "r", fromReader.Name())

	_, err = From(42)
	require.Error(t, err)
}

func TestNode_Content(t *testing.T) {
	root := mustParse(t, library)

	books := root.Children()
	require.Len(t, books, 4)

	assert.Equal(t, "Go", books[1].Content())
	assert.Equal(t, "XML in depth", books[2].Content())
	assert.Equal(t, "", books[3].Content())
}

func TestNode_Namespaces(t *testing.T) {
	root := mustParse(t, library)
	book := root.Children()[1]

	assert.Equal(t, "book", book.Name())
	assert.Equal(t, "bk:book", book.FullName())
	assert.Equal(t, "bk", book.NamespacePrefix())
	assert.Equal(t, "http://example.com/books", book.NamespaceURI())
	assert.Equal(t, "", root.NamespaceURI())
}

func TestDefaultNamespace(t *testing.T) {
	root := mustParse(t, `<feed xmlns="http://www.w3.org/2005/Atom"><entry/></feed>`)

	assert.Equal(t, DefaultPrefix, DefaultNamespace(root))
	assert.Equal(t, DefaultPrefix, DefaultNamespace(root.Children()[0]))
	assert.Equal(t, "http://www.w3.org/2005/Atom", root.Children()[0].NamespaceURI())

	plain := mustParse(t, `<feed><entry/></feed>`)
	assert.Equal(t, "", DefaultNamespace(plain))
	assert.Equal(t, "", DefaultNamespace(nil))
}

func TestMutation(t *testing.T) {
	root := NewElement("person")

	name := AddNode(root, "name")
	SetContent(name, "Ann")
	SetAttribute(root, "id", "7")

	bio := AddNode(root, "bio")
	AddCData(bio, "likes <xml>")

	s, err := root.XML(-1)
	require.NoError(t, err)
	assert.Equal(t, `<person id="7"><name>Ann</name><bio><![CDATA[likes <xml>]]></bio></person>`, s)

	SetContent(name, "Bob")
	assert.Equal(t, "Bob", name.Content())

	SetContent(bio, "plain")
	assert.Equal(t, "plain", bio.Content())
}

func TestSetContent_Attribute(t *testing.T) {
	root := mustParse(t, `<item sku="a1"/>`)

	nodes, err := Search(root, "@sku", nil)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	attr := nodes[0]
	assert.True(t, attr.IsAttribute())
	assert.Equal(t, "a1", attr.Value())

	SetContent(attr, "b2")

	v, _ := root.Attr("sku")
	assert.Equal(t, "b2", v)
	assert.Equal(t, "b2", attr.Content())
}

func TestSetName(t *testing.T) {
	root := mustParse(t, `<item sku="a1"><old/></item>`)

	child := root.Children()[0]
	child.SetName("ns:fresh")
	assert.Equal(t, "ns:fresh", child.FullName())
	assert.Equal(t, "fresh", child.Name())

	nodes, err := Search(root, "@sku", nil)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	nodes[0].SetName("code")

	v, ok := root.Attr("code")
	assert.True(t, ok)
	assert.Equal(t, "a1", v)

	_, ok = root.Attr("sku")
	assert.False(t, ok)
}

func TestAddChild_Moves(t *testing.T) {
	root := mustParse(t, `<a><b/><c/></a>`)
	b := root.Child("b")
	c := root.Child("c")
	require.NotNil(t, b)
	require.NotNil(t, c)

	AddChild(c, b)

	s, err := root.XML(-1)
	require.NoError(t, err)
	assert.Equal(t, `<a><c><b/></c></a>`, s)
}

func TestDocument(t *testing.T) {
	root := NewElement("x")
	DeclareNamespace(root, "", "urn:x")
	DeclareNamespace(root, "p", "urn:p")

	var b strings.Builder

	_, err := root.Document().WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><x xmlns="urn:x" xmlns:p="urn:p"/>`, b.String())
}
