package docs

import (
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tft-atlas/feature/cdragon"
	"tft-atlas/feature/recipes"
)

// Builder normalizes canonical records into index-ready documents.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a document builder.
func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// BuildUnits normalizes units. A unit referencing a trait identifier
// absent from the canonical trait set fails the whole branch: that shape
// mismatch means the mirror changed incompatibly, and publishing corrupt
// documents is worse than publishing none.
func (b *Builder) BuildUnits(units []cdragon.Unit, traits []cdragon.Trait) ([]UnitDoc, error) {
	known := make(map[string]struct{}, len(traits))
	for _, t := range traits {
		known[t.TraitID] = struct{}{}
	}

	out := make([]UnitDoc, 0, len(units))
	for _, u := range units {
		traitIDs := make([]string, 0, len(u.Traits))
		traitNames := make([]string, 0, len(u.Traits))
		for _, t := range u.Traits {
			if t.ID == "" {
				continue
			}
			if _, ok := known[t.ID]; !ok {
				return nil, fmt.Errorf("unit %s references unknown trait %s", u.CharacterID, t.ID)
			}
			traitIDs = append(traitIDs, t.ID)
			if t.Name != "" {
				traitNames = append(traitNames, t.Name)
			}
		}

		traitsJSON, err := json.Marshal(u.Traits)
		if err != nil {
			return nil, fmt.Errorf("marshal traits of %s: %w", u.CharacterID, err)
		}

		content := fmt.Sprintf("%s (Unit). Tier %d. Traits: %s.",
			u.DisplayName, u.Tier, strings.Join(traitNames, ", "))

		out = append(out, UnitDoc{
			ID:         u.CharacterID,
			EntityType: "unit",
			SetID:      u.SetID,
			Name:       u.DisplayName,
			Tier:       u.Tier,
			TraitIDs:   traitIDs,
			TraitNames: traitNames,
			TraitsJSON: string(traitsJSON),
			URL:        u.SourceURL,
			Content:    content,
		})
	}

	b.logger.Info("Built unit documents", zap.Int("count", len(out)))
	return out, nil
}

// BuildTraits normalizes traits, verifying that breakpoint thresholds are
// strictly increasing. A violation is fatal for the branch.
func (b *Builder) BuildTraits(traits []cdragon.Trait) ([]TraitDoc, error) {
	out := make([]TraitDoc, 0, len(traits))
	for _, t := range traits {
		mins := make([]int, 0, len(t.Breakpoints))
		var bpParts []string
		prev := -1
		for _, bp := range t.Breakpoints {
			if bp.MinUnits <= prev {
				return nil, fmt.Errorf("trait %s breakpoints not strictly increasing (%d after %d)",
					t.TraitID, bp.MinUnits, prev)
			}
			prev = bp.MinUnits
			mins = append(mins, bp.MinUnits)

			rng := fmt.Sprintf("%d+", bp.MinUnits)
			if bp.MaxUnits > 0 {
				rng = fmt.Sprintf("%d-%d", bp.MinUnits, bp.MaxUnits)
			}
			bpParts = append(bpParts, strings.TrimSpace(rng+" "+bp.Style))
		}

		bpJSON, err := json.Marshal(t.Breakpoints)
		if err != nil {
			return nil, fmt.Errorf("marshal breakpoints of %s: %w", t.TraitID, err)
		}

		content := fmt.Sprintf("%s (Trait).", t.DisplayName)
		if len(bpParts) > 0 {
			content += " Breakpoints: " + strings.Join(bpParts, " | ") + "."
		}
		if t.Tooltip != "" {
			content += " Tooltip: " + t.Tooltip
		}

		out = append(out, TraitDoc{
			ID:              t.TraitID,
			EntityType:      "trait",
			SetID:           t.SetID,
			Name:            t.DisplayName,
			BreakpointsJSON: string(bpJSON),
			MinUnits:        mins,
			URL:             t.SourceURL,
			Content:         content,
		})
	}

	b.logger.Info("Built trait documents", zap.Int("count", len(out)))
	return out, nil
}

// BuildItems normalizes items and attaches resolved recipe components.
// Items without a recipe get an explicit empty component list so
// downstream consumers can tell "no recipe" from "not yet processed".
func (b *Builder) BuildItems(items []cdragon.Item, resolved map[string]recipes.ResolvedRecipe) []ItemDoc {
	out := make([]ItemDoc, 0, len(items))
	withRecipe := 0
	for _, i := range items {
		comps := []string{}
		if r, ok := resolved[i.NameID]; ok && len(r.Components) > 0 {
			comps = append(comps, r.Components...)
			withRecipe++
		}

		content := fmt.Sprintf("%s (Item).", i.Name)
		if len(comps) > 0 {
			content += " Components: " + strings.Join(comps, ", ") + "."
		}
		if i.Desc != "" {
			content += " " + i.Desc
		}
		if i.EffectsText != "" {
			content += " Effects: " + i.EffectsText
		}

		out = append(out, ItemDoc{
			ID:         i.NameID,
			EntityType: "item",
			SetID:      i.SetID,
			Name:       i.Name,
			Desc:       i.Desc,
			Unique:     i.Unique,
			Components: comps,
			URL:        i.SourceURL,
			Content:    content,
		})
	}

	b.logger.Info("Built item documents",
		zap.Int("count", len(out)),
		zap.Int("with_recipe", withRecipe))
	return out
}
