package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers are stateful, so each call builds its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func upper(s string) string { return cases.Upper(language.Und).String(s) }
func title(s string) string { return cases.Title(language.Und).String(s) }

// Underscore converts "FirstName" and "first-name" to "first_name".
func Underscore(s string) string {
	return joinLower(Tokenize(s), "_")
}

// Dasherize converts "FirstName" and "first_name" to "first-name".
func Dasherize(s string) string {
	return joinLower(Tokenize(s), "-")
}

// Camelize converts "first_name" to "firstName".
func Camelize(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return s
	}

	var b strings.Builder

	b.WriteString(lower(tokens[0]))

	for _, t := range tokens[1:] {
		b.WriteString(title(t))
	}

	return b.String()
}

// Pascalize converts "first_name" to "FirstName".
func Pascalize(s string) string {
	tokens := Tokenize(s)
	if len(tokens) == 0 {
		return s
	}

	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(title(t))
	}

	return b.String()
}

// Upcase converts the whole name to upper case.
func Upcase(s string) string { return upper(s) }

// Downcase converts the whole name to lower case.
func Downcase(s string) string { return lower(s) }

func joinLower(tokens []string, sep string) string {
	for i, t := range tokens {
		tokens[i] = lower(t)
	}

	return strings.Join(tokens, sep)
}

// Tokenize splits a CamelCase, snake_case or kebab-case identifier into
// its words:
//   - "OrderID" -> ["Order", "ID"]
//   - "XMLParser" -> ["XML", "Parser"]
//   - "first_name" -> ["first", "name"]
//
// Percent escapes ("%C3%A9") are kept inside the surrounding word.
func Tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if isSeparator(r) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}

			continue
		}

		if r == '%' && i+2 < len(runes) {
			current.WriteString(string(runes[i : i+3]))
			i += 2

			continue
		}

		if i > 0 && current.Len() > 0 && startsToken(runes, i) {
			tokens = append(tokens, current.String())
			current.Reset()
		}

		current.WriteRune(r)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '+'
}

// startsToken determines if a new token should start at position i.
func startsToken(runes []rune, i int) bool {
	r := runes[i]
	prev := runes[i-1]

	if !unicode.IsUpper(r) {
		return false
	}

	// "orderID" -> split before 'I'
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}

	// "XMLParser" -> "XML" + "Parser", split before 'P'
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
