package recipes

// Known community sources. Precedence between them is operator
// configuration, not a property of the sites.
const (
	SourceMobalytics = "mobalytics"
	SourceLolchess   = "lolchess"
	// SourceOverride marks recipes taken from the manual override file.
	SourceOverride = "override"
)

// RawRecipeEntry is one scraped recipe before any name resolution.
// It only exists between the scrape and merge stages.
type RawRecipeEntry struct {
	// ItemName is the free-text item name as it appears on the site.
	ItemName string `json:"item_name"`
	// Components are the free-text component names, in site order.
	Components []string `json:"components"`
	// Source tags which site the entry came from.
	Source string `json:"source"`
}

// ResolvedRecipe is the merged recipe for one canonical item identifier.
type ResolvedRecipe struct {
	// Components are canonical component identifiers, deduplicated,
	// in the order of the winning source.
	Components []string `json:"components"`
	// Sources lists the sources that contributed, in precedence order.
	Sources []string `json:"sources"`
	// Conflict reports whether the sources disagreed and precedence
	// had to decide.
	Conflict bool `json:"conflict"`
}

// UnresolvedName records a community item name no canonical identifier
// could be found for.
type UnresolvedName struct {
	Name      string  `json:"name"`
	Source    string  `json:"source"`
	BestScore float64 `json:"best_score"`
}

// UnresolvedComponent records a component name that failed to resolve
// inside an otherwise accepted recipe.
type UnresolvedComponent struct {
	ItemID string `json:"item_id"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

// Conflict records a cross-source disagreement settled by precedence.
type Conflict struct {
	ItemID   string              `json:"item_id"`
	Chosen   string              `json:"chosen"`
	BySource map[string][]string `json:"by_source"`
}

// Report is the audit summary of one merge run. Unresolved names are
// collected here rather than dropped so operators can extend the
// override file.
type Report struct {
	Entries              int                   `json:"entries"`
	Resolved             int                   `json:"resolved"`
	UnresolvedItems      []UnresolvedName      `json:"unresolved_items"`
	UnresolvedComponents []UnresolvedComponent `json:"unresolved_components"`
	Conflicts            []Conflict            `json:"conflicts"`
	Overridden           []string              `json:"overridden"`
}
