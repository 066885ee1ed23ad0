// Package schema declares binding classes in YAML and compiles them into
// descriptors.
//
// A schema file lists types; each type lists the fields of its records and
// how every field is found in XML:
//
//	convention: underscore
//	types:
//	  - name: Person
//	    fields:
//	      - accessor: Name
//	        required: true
//	      - accessor: ID
//	        from: "@id"
//	      - accessor: Tags
//	        array: true
//	        transforms: [trim]
//
// The "from" shorthand selects an attribute ("@id"), the node's own
// content ("."), its tag name ("*"), or an element name taken verbatim.
// Compile validates the file against a TransformRegistry and produces a Set
// of Types; a Type decodes XML into Records or structs and encodes them
// back.
package schema
