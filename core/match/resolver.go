package match

import "sort"

// DefaultThreshold is the minimum similarity score a fuzzy match must
// clear to be accepted.
const DefaultThreshold = 0.85

// Result is the outcome of resolving one community name.
type Result struct {
	// ID is the canonical identifier. Empty when unresolved.
	ID string `json:"id"`
	// Score is the similarity that produced the match; 1 for exact.
	Score float64 `json:"score"`
	// Resolved reports whether a canonical identifier was found.
	Resolved bool `json:"resolved"`
}

type candidate struct {
	id   string
	norm string
}

// Resolver maps free-text community names to canonical identifiers.
// It is built once per run from the canonical name set and is safe for
// concurrent reads.
type Resolver struct {
	scorer    Scorer
	threshold float64
	exact     map[string]string
	cands     []candidate
}

// NewResolver builds a resolver from canonical names keyed by identifier.
// A nil scorer selects LevenshteinScorer; a threshold <= 0 selects
// DefaultThreshold.
func NewResolver(canonical map[string]string, scorer Scorer, threshold float64) *Resolver {
	if scorer == nil {
		scorer = LevenshteinScorer{}
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	r := &Resolver{
		scorer:    scorer,
		threshold: threshold,
		exact:     make(map[string]string, len(canonical)),
	}

	ids := make([]string, 0, len(canonical))
	for id := range canonical {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		norm := Normalize(canonical[id])
		if norm == "" {
			continue
		}
		// First identifier in sorted order wins normalized-name collisions.
		if _, taken := r.exact[norm]; !taken {
			r.exact[norm] = id
		}
		r.cands = append(r.cands, candidate{id: id, norm: norm})
	}

	return r
}

// Resolve returns the best canonical match for a community name, or an
// unresolved Result when no candidate clears the threshold.
func (r *Resolver) Resolve(name string) Result {
	norm := Normalize(name)
	if norm == "" {
		return Result{}
	}

	if id, ok := r.exact[norm]; ok {
		return Result{ID: id, Score: 1, Resolved: true}
	}

	var best candidate
	bestScore := -1.0
	for _, c := range r.cands {
		score := r.scorer.Score(norm, c.norm)
		if score > bestScore || (score == bestScore && betterTie(c, best)) {
			best = c
			bestScore = score
		}
	}

	if bestScore < r.threshold {
		return Result{Score: bestScore}
	}
	return Result{ID: best.id, Score: bestScore, Resolved: true}
}

// betterTie breaks equal scores deterministically: shorter canonical name
// first, then lexicographic identifier.
func betterTie(a, b candidate) bool {
	if len(a.norm) != len(b.norm) {
		return len(a.norm) < len(b.norm)
	}
	return a.id < b.id
}
