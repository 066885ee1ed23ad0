// Package naming converts field names into their on-the-wire XML form.
//
// A Convention is a plain string transform. Conventionize wraps the call in
// percent-encoding so the transform only ever sees ASCII-safe text, which
// keeps non-ASCII names intact through case conversions.
package naming

import (
	"net/url"
	"sort"
	"strings"
)

// Convention transforms a raw field name into its on-the-wire name.
type Convention func(string) string

// Conventionize applies c to name. Blank names and a nil convention return
// the name unchanged. The transform receives the query-escaped name and its
// result is unescaped again.
func Conventionize(name string, c Convention) string {
	if c == nil || strings.TrimSpace(name) == "" {
		return name
	}

	out := c(url.QueryEscape(name))

	decoded, err := url.QueryUnescape(out)
	if err != nil {
		return out
	}

	return decoded
}

var conventions = map[string]Convention{
	"underscore": Underscore,
	"snake":      Underscore,
	"dasherize":  Dasherize,
	"kebab":      Dasherize,
	"camelcase":  Camelize,
	"camel":      Camelize,
	"pascalcase": Pascalize,
	"pascal":     Pascalize,
	"upcase":     Upcase,
	"downcase":   Downcase,
}

// Lookup returns the built-in convention registered under name.
// The empty name and "none" resolve to a nil convention.
func Lookup(name string) (Convention, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || key == "none" {
		return nil, true
	}

	c, ok := conventions[key]

	return c, ok
}

// Names returns the names accepted by Lookup, sorted.
func Names() []string {
	names := make([]string, 0, len(conventions)+1)
	for name := range conventions {
		names = append(names, name)
	}

	names = append(names, "none")
	sort.Strings(names)

	return names
}
