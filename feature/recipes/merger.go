package recipes

import (
	"sort"

	"go.uber.org/zap"

	"tft-atlas/core/match"
)

// Merger combines raw recipe entries from multiple sources into at most
// one resolved recipe per canonical item identifier.
type Merger struct {
	resolver   *match.Resolver
	precedence []string
	logger     *zap.Logger
}

// NewMerger creates a merger. The precedence list decides cross-source
// conflicts; the first listed source wins.
func NewMerger(resolver *match.Resolver, precedence []string, logger *zap.Logger) *Merger {
	return &Merger{resolver: resolver, precedence: precedence, logger: logger}
}

// candidate is one source's recipe for one resolved item.
type candidate struct {
	source     string
	components []string
}

// Merge resolves every entry's names, merges recipes across sources, and
// applies manual overrides last. Overrides win unconditionally. The
// returned report carries everything an operator needs to audit the run.
func (m *Merger) Merge(entries []RawRecipeEntry, overrides Overrides) (map[string]ResolvedRecipe, *Report) {
	report := &Report{Entries: len(entries)}

	// Resolve names entry by entry, grouping candidates per item.
	// The first entry a source supplies for an item wins over its own
	// later duplicates.
	byItem := make(map[string][]candidate)
	for _, e := range entries {
		itemRes := m.resolver.Resolve(e.ItemName)
		if !itemRes.Resolved {
			report.UnresolvedItems = append(report.UnresolvedItems, UnresolvedName{
				Name:      e.ItemName,
				Source:    e.Source,
				BestScore: itemRes.Score,
			})
			continue
		}

		var comps []string
		seen := make(map[string]struct{})
		for _, name := range e.Components {
			compRes := m.resolver.Resolve(name)
			if !compRes.Resolved {
				// The recipe is kept; the gap is flagged for the audit.
				report.UnresolvedComponents = append(report.UnresolvedComponents, UnresolvedComponent{
					ItemID: itemRes.ID,
					Name:   name,
					Source: e.Source,
				})
				continue
			}
			if _, dup := seen[compRes.ID]; dup {
				continue
			}
			seen[compRes.ID] = struct{}{}
			comps = append(comps, compRes.ID)
		}
		if len(comps) == 0 {
			continue
		}

		if hasSource(byItem[itemRes.ID], e.Source) {
			continue
		}
		byItem[itemRes.ID] = append(byItem[itemRes.ID], candidate{source: e.Source, components: comps})
	}

	// Merge per item, iterating identifiers in sorted order so the
	// report is deterministic.
	itemIDs := make([]string, 0, len(byItem))
	for id := range byItem {
		itemIDs = append(itemIDs, id)
	}
	sort.Strings(itemIDs)

	resolved := make(map[string]ResolvedRecipe, len(itemIDs))
	for _, id := range itemIDs {
		cands := byItem[id]
		sort.SliceStable(cands, func(i, j int) bool {
			ri, rj := m.sourceRank(cands[i].source), m.sourceRank(cands[j].source)
			if ri != rj {
				return ri < rj
			}
			return cands[i].source < cands[j].source
		})

		winner := cands[0]
		agree := true
		for _, c := range cands[1:] {
			if !sameComponentSet(winner.components, c.components) {
				agree = false
				break
			}
		}

		sources := make([]string, 0, len(cands))
		for _, c := range cands {
			sources = append(sources, c.source)
		}

		if !agree {
			bySource := make(map[string][]string, len(cands))
			for _, c := range cands {
				bySource[c.source] = c.components
			}
			report.Conflicts = append(report.Conflicts, Conflict{
				ItemID:   id,
				Chosen:   winner.source,
				BySource: bySource,
			})
		}

		resolved[id] = ResolvedRecipe{
			Components: winner.components,
			Sources:    sources,
			Conflict:   !agree,
		}
	}

	// Manual overrides are always applied last and replace whatever the
	// sources produced.
	overrideIDs := make([]string, 0, len(overrides))
	for id := range overrides {
		overrideIDs = append(overrideIDs, id)
	}
	sort.Strings(overrideIDs)
	for _, id := range overrideIDs {
		resolved[id] = ResolvedRecipe{
			Components: append([]string(nil), overrides[id]...),
			Sources:    []string{SourceOverride},
		}
		report.Overridden = append(report.Overridden, id)
	}

	report.Resolved = len(resolved)
	m.logger.Info("Merged recipes",
		zap.Int("entries", report.Entries),
		zap.Int("resolved", report.Resolved),
		zap.Int("unresolved_items", len(report.UnresolvedItems)),
		zap.Int("conflicts", len(report.Conflicts)),
		zap.Int("overridden", len(report.Overridden)))

	return resolved, report
}

// sourceRank orders sources by the configured precedence list; sources
// missing from the list rank after every listed one.
func (m *Merger) sourceRank(source string) int {
	for i, s := range m.precedence {
		if s == source {
			return i
		}
	}
	return len(m.precedence)
}

func hasSource(cands []candidate, source string) bool {
	for _, c := range cands {
		if c.source == source {
			return true
		}
	}
	return false
}

// sameComponentSet compares recipes as unordered identifier sets.
func sameComponentSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, id := range a {
		set[id] = struct{}{}
	}
	for _, id := range b {
		if _, ok := set[id]; !ok {
			return false
		}
	}
	return true
}
