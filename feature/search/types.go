package search

// REST document shapes for the search service management API. Only the
// properties this pipeline sets are modeled; the service fills in
// defaults for the rest.

// Index is an index definition.
type Index struct {
	Name         string        `json:"name"`
	Fields       []Field       `json:"fields"`
	VectorSearch *VectorSearch `json:"vectorSearch,omitempty"`
}

// Field is one index field.
type Field struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Key        bool   `json:"key,omitempty"`
	Searchable bool   `json:"searchable"`
	Filterable bool   `json:"filterable"`
	Sortable   bool   `json:"sortable"`
	Analyzer   string `json:"analyzer,omitempty"`

	// Vector field properties.
	Dimensions          int    `json:"dimensions,omitempty"`
	VectorSearchProfile string `json:"vectorSearchProfile,omitempty"`
}

// VectorSearch declares the HNSW algorithm, profile, and the named
// vectorizer used for query-time embedding.
type VectorSearch struct {
	Algorithms  []VectorAlgorithm `json:"algorithms"`
	Profiles    []VectorProfile   `json:"profiles"`
	Vectorizers []Vectorizer      `json:"vectorizers"`
}

type VectorAlgorithm struct {
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	HnswParameters HnswParameters `json:"hnswParameters"`
}

type HnswParameters struct {
	Metric string `json:"metric"`
}

type VectorProfile struct {
	Name       string `json:"name"`
	Algorithm  string `json:"algorithm"`
	Vectorizer string `json:"vectorizer"`
}

type Vectorizer struct {
	Name             string           `json:"name"`
	Kind             string           `json:"kind"`
	AzureOpenAIParameters VectorizerParams `json:"azureOpenAIParameters"`
}

type VectorizerParams struct {
	ResourceURI  string `json:"resourceUri"`
	DeploymentID string `json:"deploymentId"`
	APIKey       string `json:"apiKey,omitempty"`
	ModelName    string `json:"modelName,omitempty"`
}

// DataSource points the indexer at a blob container of JSONL documents.
type DataSource struct {
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Credentials DataSourceCreds     `json:"credentials"`
	Container   DataSourceContainer `json:"container"`
}

type DataSourceCreds struct {
	ConnectionString string `json:"connectionString"`
}

type DataSourceContainer struct {
	Name string `json:"name"`
}

// Skillset chunks documents and embeds the chunks server-side.
type Skillset struct {
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	Skills           []Skill           `json:"skills"`
	IndexProjections *IndexProjections `json:"indexProjections,omitempty"`
}

// Skill is a union of the split and embedding skill properties; the
// @odata.type discriminator selects which subset applies.
type Skill struct {
	ODataType string `json:"@odata.type"`
	Name      string `json:"name,omitempty"`
	Context   string `json:"context,omitempty"`

	// Split skill.
	TextSplitMode       string `json:"textSplitMode,omitempty"`
	MaximumPageLength   int    `json:"maximumPageLength,omitempty"`
	PageOverlapLength   int    `json:"pageOverlapLength,omitempty"`
	DefaultLanguageCode string `json:"defaultLanguageCode,omitempty"`
	Unit                string `json:"unit,omitempty"`

	// Embedding skill.
	ResourceURI  string `json:"resourceUri,omitempty"`
	DeploymentID string `json:"deploymentId,omitempty"`
	APIKey       string `json:"apiKey,omitempty"`
	ModelName    string `json:"modelName,omitempty"`
	Dimensions   int    `json:"dimensions,omitempty"`

	Inputs  []IOMapping `json:"inputs"`
	Outputs []IOMapping `json:"outputs"`
}

// IOMapping maps a skill input source or output target.
type IOMapping struct {
	Name       string `json:"name"`
	Source     string `json:"source,omitempty"`
	TargetName string `json:"targetName,omitempty"`
}

type IndexProjections struct {
	Selectors  []ProjectionSelector  `json:"selectors"`
	Parameters *ProjectionParameters `json:"parameters,omitempty"`
}

type ProjectionSelector struct {
	TargetIndexName    string      `json:"targetIndexName"`
	ParentKeyFieldName string      `json:"parentKeyFieldName"`
	SourceContext      string      `json:"sourceContext"`
	Mappings           []IOMapping `json:"mappings"`
}

type ProjectionParameters struct {
	ProjectionMode string `json:"projectionMode,omitempty"`
}

// Indexer connects a datasource, skillset, and target index.
type Indexer struct {
	Name            string             `json:"name"`
	DataSourceName  string             `json:"dataSourceName"`
	SkillsetName    string             `json:"skillsetName,omitempty"`
	TargetIndexName string             `json:"targetIndexName"`
	Parameters      *IndexerParameters `json:"parameters,omitempty"`
}

type IndexerParameters struct {
	Configuration map[string]any `json:"configuration,omitempty"`
}

// IndexerStatus is the poll response for a running indexer.
type IndexerStatus struct {
	Status     string         `json:"status"`
	LastResult *IndexerResult `json:"lastResult"`
}

// IndexerResult summarizes one indexer execution. Per-document errors
// land in Errors; they are reported, never fatal.
type IndexerResult struct {
	Status         string         `json:"status"`
	ErrorMessage   string         `json:"errorMessage"`
	ItemsProcessed int            `json:"itemsProcessed"`
	ItemsFailed    int            `json:"itemsFailed"`
	Errors         []IndexerError `json:"errors"`
}

type IndexerError struct {
	Key          string `json:"key"`
	ErrorMessage string `json:"errorMessage"`
}
