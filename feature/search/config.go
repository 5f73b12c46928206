package search

// Config holds the search service connection and publishing settings.
type Config struct {
	// Endpoint is the search service URL.
	Endpoint string `mapstructure:"endpoint" default:""`
	// APIKey is the admin key used for management and query calls.
	APIKey string `mapstructure:"api_key" default:""`
	// APIVersion is appended to every REST call.
	APIVersion string `mapstructure:"api_version" default:"2024-07-01"`

	// One index and one blob container per entity type.
	IndexUnits      string `mapstructure:"index_units" default:"tft-units"`
	IndexItems      string `mapstructure:"index_items" default:"tft-items"`
	IndexTraits     string `mapstructure:"index_traits" default:"tft-traits"`
	ContainerUnits  string `mapstructure:"container_units" default:"tft-units"`
	ContainerItems  string `mapstructure:"container_items" default:"tft-items"`
	ContainerTraits string `mapstructure:"container_traits" default:"tft-traits"`

	// BlobConnection is the connection string the search service uses to
	// read the uploaded JSONL containers.
	BlobConnection string `mapstructure:"blob_connection" default:""`

	// Vectorizer settings; embeddings are computed server-side at index
	// and query time, never locally.
	EmbedResourceURI string `mapstructure:"embed_resource_uri" default:""`
	EmbedAPIKey      string `mapstructure:"embed_api_key" default:""`
	EmbedDeployment  string `mapstructure:"embed_deployment" default:""`
	EmbedModel       string `mapstructure:"embed_model" default:""`
	EmbedDim         int    `mapstructure:"embed_dim" default:"1536"`
	EmbedMetric      string `mapstructure:"embed_metric" default:"cosine"`

	// Indexer polling.
	PollIntervalSeconds int `mapstructure:"poll_interval_seconds" default:"5"`
	PollTimeoutSeconds  int `mapstructure:"poll_timeout_seconds" default:"600"`
	TimeoutSeconds      int `mapstructure:"timeout_seconds" default:"30"`
}

// Branch bundles the per-entity-type publishing targets.
type Branch struct {
	Entity    string
	Index     string
	Container string
	BlobName  string
}

// Branches returns the publishing targets for all three entity types.
func (c Config) Branches() []Branch {
	return []Branch{
		{Entity: "units", Index: c.IndexUnits, Container: c.ContainerUnits, BlobName: "units.jsonl"},
		{Entity: "items", Index: c.IndexItems, Container: c.ContainerItems, BlobName: "items.jsonl"},
		{Entity: "traits", Index: c.IndexTraits, Container: c.ContainerTraits, BlobName: "traits.jsonl"},
	}
}

// BranchFor returns the branch for one entity type.
func (c Config) BranchFor(entity string) (Branch, bool) {
	for _, b := range c.Branches() {
		if b.Entity == entity {
			return b, true
		}
	}
	return Branch{}, false
}
