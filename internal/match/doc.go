// Package match finds near matches for misspelled names.
//
// Names are normalized (case-folded, separators stripped), compared by
// rune-wise Levenshtein distance and ranked; Suggest returns the few known
// names close enough to be worth proposing in a diagnostic.
package match
