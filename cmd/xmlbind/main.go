// Command xmlbind decodes XML documents into YAML records and encodes YAML
// records back into XML, driven by a binding schema.
//
// Usage:
//
//	xmlbind check  --schema books.yaml
//	xmlbind decode --schema books.yaml --type Book book.xml
//	xmlbind encode --schema books.yaml --type Book book.yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
