package match

import (
	"cmp"
	"slices"
)

// Suggestion thresholds.
const (
	// DefaultMinScore is the minimum score for a name to be suggested.
	DefaultMinScore = 0.5
	// DefaultMaxSuggestions caps the number of suggested names.
	DefaultMaxSuggestions = 3
)

// Candidate is a known name scored against a requested one.
type Candidate struct {
	Name string
	// Normalized Levenshtein similarity (0-1), the better of the plain and
	// suffix-stripped forms.
	Score float64
}

// CandidateList is a list of candidates, best first.
type CandidateList []Candidate

// RankNames scores every known name against requested, best first. Ties are
// broken by name.
func RankNames(requested string, known []string) CandidateList {
	reqNorm := NormalizeIdent(requested)
	reqStripped := NormalizeIdentWithSuffixStrip(requested)

	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		score := max(
			LevenshteinNormalized(NormalizeIdent(name), reqNorm),
			LevenshteinNormalized(NormalizeIdentWithSuffixStrip(name), reqStripped),
		)

		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	slices.SortFunc(candidates, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return candidates
}

// Suggest returns up to DefaultMaxSuggestions known names that look like a
// misspelling of requested. Exact matches are never suggested.
func Suggest(requested string, known []string) []string {
	var out []string

	for _, c := range RankNames(requested, known).AboveThreshold(DefaultMinScore).Top(DefaultMaxSuggestions) {
		if c.Name == requested {
			continue
		}

		out = append(out, c.Name)
	}

	return out
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	return c[:min(n, len(c))]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
