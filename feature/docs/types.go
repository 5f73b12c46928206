package docs

// The JSON field names below are the schema contract with the search
// indexes and must stay stable across runs.

// UnitDoc is the index-ready document for one unit.
type UnitDoc struct {
	ID         string   `json:"id"`
	EntityType string   `json:"entity_type"`
	SetID      string   `json:"set_id"`
	Name       string   `json:"name"`
	Tier       int      `json:"tier"`
	TraitIDs   []string `json:"trait_ids"`
	TraitNames []string `json:"trait_names"`
	TraitsJSON string   `json:"traits_json"`
	URL        string   `json:"url"`
	Content    string   `json:"content"`
}

// TraitDoc is the index-ready document for one trait.
type TraitDoc struct {
	ID              string `json:"id"`
	EntityType      string `json:"entity_type"`
	SetID           string `json:"set_id"`
	Name            string `json:"name"`
	BreakpointsJSON string `json:"breakpoints_json"`
	MinUnits        []int  `json:"min_units"`
	URL             string `json:"url"`
	Content         string `json:"content"`
}

// ItemDoc is the index-ready document for one item. Components is always
// present: an empty list means "no recipe", never "not yet processed".
type ItemDoc struct {
	ID         string   `json:"id"`
	EntityType string   `json:"entity_type"`
	SetID      string   `json:"set_id"`
	Name       string   `json:"name"`
	Desc       string   `json:"desc"`
	Unique     bool     `json:"unique"`
	Components []string `json:"components"`
	URL        string   `json:"url"`
	Content    string   `json:"content"`
}

// Config holds the artifact directory settings.
type Config struct {
	// Dir is where intermediate JSONL artifacts and run reports land.
	Dir string `mapstructure:"dir" default:"work"`
}
