package match

import "github.com/agnivade/levenshtein"

// Scorer rates the similarity of two normalized names in [0, 1].
// It is an interface so the algorithm and threshold can be swapped
// without touching the merge logic that consumes Resolver results.
type Scorer interface {
	Score(query, candidate string) float64
}

// LevenshteinScorer scores by edit distance relative to the longer input.
type LevenshteinScorer struct{}

func (LevenshteinScorer) Score(query, candidate string) float64 {
	if query == candidate {
		return 1
	}
	longest := len([]rune(query))
	if l := len([]rune(candidate)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(query, candidate)
	score := 1 - float64(dist)/float64(longest)
	if score < 0 {
		return 0
	}
	return score
}
