// Package diagnostic provides structured errors, warnings and notes for
// instruction files.
//
// Each Diagnostic carries a stable code, the destination field path it
// relates to, and "did you mean" suggestions for misspelled names.
package diagnostic
