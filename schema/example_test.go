package schema_test

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"xmlbind/schema"
)

func ExampleCompile() {
	f, err := schema.Parse([]byte(`
types:
  - name: Book
    tag: book
    fields:
      - accessor: Title
        name: title
      - accessor: Year
        from: "@year"
        transforms: int
`))
	if err != nil {
		panic(err)
	}

	set, err := schema.Compile(f, nil)
	if err != nil {
		panic(err)
	}

	book, _ := set.Type("Book")

	rec, err := book.Decode(`<book year="1965"><title>Dune</title></book>`)
	if err != nil {
		panic(err)
	}

	out, _ := yaml.Marshal(rec)
	fmt.Print(string(out))

	n, _ := book.Encode(rec)
	s, _ := n.XML(-1)
	fmt.Println(s)

	// Output:
	// Title: Dune
	// Year: 1965
	// <book year="1965"><title>Dune</title></book>
}
