package match

import (
	"sort"
)

// Candidate is a known name scored against an unknown one.
type Candidate struct {
	Name  string
	Score float64 // normalized similarity, 0..1
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankNames scores every known name against target.
// Returns candidates sorted by score (descending).
func RankNames(target string, known []string) CandidateList {
	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		candidates = append(candidates, Candidate{
			Name:  name,
			Score: NormalizedLevenshteinScore(target, name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to limit known names that are plausibly what target
// meant, best first.
func Suggest(target string, known []string, limit int) []string {
	ranked := RankNames(target, known).AboveThreshold(DefaultSuggestScore).Top(limit)

	names := make([]string, 0, len(ranked))
	for _, c := range ranked {
		names = append(names, c.Name)
	}

	return names
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n < 0 || n >= len(c) {
		return c
	}

	return c[:n]
}

// AboveThreshold returns candidates with score at or above the threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}

// DefaultSuggestScore is the minimum similarity for a name to be suggested.
const DefaultSuggestScore = 0.5
