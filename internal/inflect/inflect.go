// Package inflect pluralizes element names for automatic wrapper discovery.
package inflect

import "github.com/jinzhu/inflection"

// Inflector is the default pluralizer, following the ActiveSupport rules.
// The zero value is ready to use.
type Inflector struct{}

// Pluralize implements the binding inflector contract.
func (Inflector) Pluralize(word string) string {
	return Pluralize(word)
}

// Pluralize returns the plural form of an English word. A leading capital
// is kept and blank input is returned unchanged.
func Pluralize(word string) string {
	if word == "" {
		return word
	}

	return inflection.Plural(word)
}
