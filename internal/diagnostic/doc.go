// Package diagnostic collects structured errors, warnings and notes produced
// while validating binding schemas.
//
// Each diagnostic carries a stable code, the schema type and field it
// concerns, and optional near-match suggestions for misspelled names.
package diagnostic
