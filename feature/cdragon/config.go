package cdragon

// Config holds the game-data mirror endpoints.
type Config struct {
	// UnitsURL is the team-planner JSON export (units keyed by set).
	UnitsURL string `mapstructure:"units_url" default:"https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/tftchampions-teamplanner.json"`
	// ItemsURL is the item JSON export.
	ItemsURL string `mapstructure:"items_url" default:"https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/tftitems.json"`
	// TraitsURL is the trait JSON export.
	TraitsURL string `mapstructure:"traits_url" default:"https://raw.communitydragon.org/latest/plugins/rcp-be-lol-game-data/global/default/v1/tfttraits.json"`
	// SetKey selects the TFT set in the units export. When the key is
	// absent the newest TFTSet key in the payload is used.
	SetKey string `mapstructure:"set_key" default:"TFTSet15"`
	// TimeoutSeconds is the per-request timeout.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
