package search

import "fmt"

// VectorField is the per-chunk embedding field every index carries.
const VectorField = "text_vector"

// Derived resource names, index-scoped like the rest of the definitions.
func datasourceName(index string) string { return index + "-ds" }
func skillsetName(index string) string   { return index + "-ss" }
func indexerName(index string) string    { return index + "-idxr" }
func algorithmName(index string) string  { return index + "-algorithm" }
func profileName(index string) string    { return index + "-profile" }
func vectorizerName(index string) string { return index + "-vectorizer" }

// buildIndex assembles the index definition for one entity type. All
// three indexes share the chunk scaffolding (parent key, chunk text,
// vector) and differ only in the flattened entity fields.
func (c Config) buildIndex(branch Branch) Index {
	fields := []Field{
		{Name: "chunk_id", Type: "Edm.String", Key: true, Searchable: true, Sortable: true, Analyzer: "keyword"},
		{Name: "parent_id", Type: "Edm.String", Filterable: true},
		{Name: "chunk", Type: "Edm.String", Searchable: true},
		{Name: "entity_type", Type: "Edm.String", Filterable: true},
		{Name: "set_id", Type: "Edm.String", Filterable: true},
		{Name: "name", Type: "Edm.String", Searchable: true, Filterable: true, Sortable: true},
		{Name: "url", Type: "Edm.String"},
	}

	switch branch.Entity {
	case "units":
		fields = append(fields,
			Field{Name: "tier", Type: "Edm.Int32", Filterable: true, Sortable: true},
			Field{Name: "trait_ids", Type: "Collection(Edm.String)", Filterable: true},
			Field{Name: "trait_names", Type: "Collection(Edm.String)", Searchable: true, Filterable: true},
			Field{Name: "traits_json", Type: "Edm.String"},
		)
	case "items":
		fields = append(fields,
			Field{Name: "desc", Type: "Edm.String", Searchable: true},
			Field{Name: "unique", Type: "Edm.Boolean", Filterable: true},
			Field{Name: "components", Type: "Collection(Edm.String)", Filterable: true},
		)
	case "traits":
		fields = append(fields,
			Field{Name: "breakpoints_json", Type: "Edm.String"},
			Field{Name: "min_units", Type: "Collection(Edm.Int32)"},
		)
	}

	fields = append(fields, Field{
		Name:                VectorField,
		Type:                "Collection(Edm.Single)",
		Searchable:          true,
		Dimensions:          c.EmbedDim,
		VectorSearchProfile: profileName(branch.Index),
	})

	return Index{
		Name:   branch.Index,
		Fields: fields,
		VectorSearch: &VectorSearch{
			Algorithms: []VectorAlgorithm{{
				Name:           algorithmName(branch.Index),
				Kind:           "hnsw",
				HnswParameters: HnswParameters{Metric: c.EmbedMetric},
			}},
			Profiles: []VectorProfile{{
				Name:       profileName(branch.Index),
				Algorithm:  algorithmName(branch.Index),
				Vectorizer: vectorizerName(branch.Index),
			}},
			Vectorizers: []Vectorizer{{
				Name: vectorizerName(branch.Index),
				Kind: "azureOpenAI",
				AzureOpenAIParameters: VectorizerParams{
					ResourceURI:  c.EmbedResourceURI,
					DeploymentID: c.EmbedDeployment,
					APIKey:       c.EmbedAPIKey,
					ModelName:    c.EmbedModel,
				},
			}},
		},
	}
}

// buildDataSource points the indexer at the branch's blob container.
func (c Config) buildDataSource(branch Branch) DataSource {
	return DataSource{
		Name:        datasourceName(branch.Index),
		Type:        "azureblob",
		Credentials: DataSourceCreds{ConnectionString: c.BlobConnection},
		Container:   DataSourceContainer{Name: branch.Container},
	}
}

// buildSkillset chunks each document's content field and embeds the
// chunks; index projections write one child document per chunk into the
// target index, keyed back to the parent record.
func (c Config) buildSkillset(branch Branch) Skillset {
	split := Skill{
		ODataType:           "#Microsoft.Skills.Text.SplitSkill",
		Name:                "#1",
		Context:             "/document",
		TextSplitMode:       "pages",
		MaximumPageLength:   2000,
		PageOverlapLength:   500,
		DefaultLanguageCode: "en",
		Unit:                "characters",
		Inputs:  []IOMapping{{Name: "text", Source: "/document/content"}},
		Outputs: []IOMapping{{Name: "textItems", TargetName: "pages"}},
	}

	embed := Skill{
		ODataType:    "#Microsoft.Skills.Text.AzureOpenAIEmbeddingSkill",
		Name:         "#2",
		Context:      "/document/pages/*",
		ResourceURI:  c.EmbedResourceURI,
		DeploymentID: c.EmbedDeployment,
		APIKey:       c.EmbedAPIKey,
		ModelName:    c.EmbedModel,
		Dimensions:   c.EmbedDim,
		Inputs:  []IOMapping{{Name: "text", Source: "/document/pages/*"}},
		Outputs: []IOMapping{{Name: "embedding", TargetName: VectorField}},
	}

	mappings := []IOMapping{
		{Name: "chunk", Source: "/document/pages/*"},
		{Name: VectorField, Source: "/document/pages/*/" + VectorField},
		{Name: "entity_type", Source: "/document/entity_type"},
		{Name: "set_id", Source: "/document/set_id"},
		{Name: "name", Source: "/document/name"},
		{Name: "url", Source: "/document/url"},
	}
	for _, f := range entityMappings(branch.Entity) {
		mappings = append(mappings, IOMapping{Name: f, Source: "/document/" + f})
	}

	return Skillset{
		Name:        skillsetName(branch.Index),
		Description: fmt.Sprintf("Chunk and embed %s documents", branch.Entity),
		Skills:      []Skill{split, embed},
		IndexProjections: &IndexProjections{
			Selectors: []ProjectionSelector{{
				TargetIndexName:    branch.Index,
				ParentKeyFieldName: "parent_id",
				SourceContext:      "/document/pages/*",
				Mappings:           mappings,
			}},
			Parameters: &ProjectionParameters{ProjectionMode: "skipIndexingParentDocuments"},
		},
	}
}

func entityMappings(entity string) []string {
	switch entity {
	case "units":
		return []string{"tier", "trait_ids", "trait_names", "traits_json"}
	case "items":
		return []string{"desc", "unique", "components"}
	case "traits":
		return []string{"breakpoints_json", "min_units"}
	}
	return nil
}

// buildIndexer wires datasource, skillset, and index, parsing the blob
// as JSON lines.
func (c Config) buildIndexer(branch Branch) Indexer {
	return Indexer{
		Name:            indexerName(branch.Index),
		DataSourceName:  datasourceName(branch.Index),
		SkillsetName:    skillsetName(branch.Index),
		TargetIndexName: branch.Index,
		Parameters: &IndexerParameters{
			Configuration: map[string]any{"parsingMode": "jsonLines"},
		},
	}
}
