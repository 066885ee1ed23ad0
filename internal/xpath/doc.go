// Package xpath implements the narrow, abbreviated path language used to
// address nodes inside a bound XML element, and the namespace rewriter that
// qualifies generated paths.
//
// # Path Syntax
//
// Paths are relative and made of '/'-separated steps:
//   - Child elements: "name", "prefix:name", "*"
//   - Attributes: "@name", "@prefix:name"
//   - Context and parent: ".", ".."
//   - Predicates on element steps: "[local-name()='x']",
//     "[namespace-uri()='uri']", "[namespace-uri()!='']"
//
// Anything else (absolute paths, axes, functions, positional predicates)
// is rejected. General XPath evaluation is out of scope.
//
// # Namespace Rewriting
//
// Namespacify qualifies every unqualified element step with a namespace
// prefix, or with a local-name() match when the namespace is the wildcard
// "*". This lets a binding declare its namespace once instead of spelling
// prefixes in every path.
package xpath
