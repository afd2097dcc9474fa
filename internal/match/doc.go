// Package match ranks known names against a misspelled one.
//
// It backs the "did you mean" hints attached to diagnostics for unknown
// strategy, aggregate and operator names in instruction files.
//
// Key functions:
//   - NormalizeIdent: case- and separator-insensitive form of a name
//   - Levenshtein: edit distance between strings
//   - RankNames / Suggest: candidate ranking
package match
