package recipes

// Config holds the recipe scraping and merging settings.
type Config struct {
	// Precedence orders the community sources for conflict resolution;
	// the first listed source wins disagreements.
	Precedence []string `mapstructure:"precedence" default:"mobalytics,lolchess"`
	// Threshold is the minimum similarity score for fuzzy name matches.
	Threshold float64 `mapstructure:"threshold" default:"0.85"`
	// OverridePath is the manual override file, edited by operators only.
	OverridePath string `mapstructure:"override_path" default:"work/item_components_overrides.json"`
	// CandidatePath is where the recipes command writes merged recipes
	// for operator review.
	CandidatePath string `mapstructure:"candidate_path" default:"work/item_components_candidates.json"`
	// MobalyticsURL is the combined-items page.
	MobalyticsURL string `mapstructure:"mobalytics_url" default:"https://mobalytics.gg/tft/items/combined"`
	// LolchessURL is the item recipe table page.
	LolchessURL string `mapstructure:"lolchess_url" default:"https://lolchess.gg/items"`
	// TimeoutSeconds is the per-request scrape timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"20"`
}
