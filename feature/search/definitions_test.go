package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Endpoint:         "https://search.example.net",
		APIKey:           "admin-key",
		APIVersion:       "2024-07-01",
		IndexUnits:       "tft-units",
		IndexItems:       "tft-items",
		IndexTraits:      "tft-traits",
		ContainerUnits:   "tft-units",
		ContainerItems:   "tft-items",
		ContainerTraits:  "tft-traits",
		BlobConnection:   "DefaultEndpointsProtocol=https;AccountName=test",
		EmbedResourceURI: "https://aoai.example.net",
		EmbedAPIKey:      "embed-key",
		EmbedDeployment:  "text-embedding-3-small",
		EmbedModel:       "text-embedding-3-small",
		EmbedDim:         1536,
		EmbedMetric:      "cosine",
	}
}

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

func TestBranchesCoverAllEntities(t *testing.T) {
	cfg := testConfig()
	branches := cfg.Branches()
	require.Len(t, branches, 3)

	entities := make([]string, 0, 3)
	for _, b := range branches {
		entities = append(entities, b.Entity)
		assert.NotEmpty(t, b.Index)
		assert.NotEmpty(t, b.Container)
		assert.NotEmpty(t, b.BlobName)
	}
	assert.Equal(t, []string{"units", "items", "traits"}, entities)

	_, ok := cfg.BranchFor("units")
	assert.True(t, ok)
	_, ok = cfg.BranchFor("augments")
	assert.False(t, ok)
}

func TestBuildIndexUnits(t *testing.T) {
	cfg := testConfig()
	branch, _ := cfg.BranchFor("units")
	idx := cfg.buildIndex(branch)

	assert.Equal(t, "tft-units", idx.Name)
	names := fieldNames(idx.Fields)
	assert.Contains(t, names, "chunk_id")
	assert.Contains(t, names, "parent_id")
	assert.Contains(t, names, "chunk")
	assert.Contains(t, names, "tier")
	assert.Contains(t, names, "trait_names")
	assert.Contains(t, names, VectorField)
	assert.NotContains(t, names, "components")

	var vector Field
	for _, f := range idx.Fields {
		if f.Name == VectorField {
			vector = f
		}
	}
	assert.Equal(t, "Collection(Edm.Single)", vector.Type)
	assert.Equal(t, 1536, vector.Dimensions)
	assert.Equal(t, "tft-units-profile", vector.VectorSearchProfile)

	require.NotNil(t, idx.VectorSearch)
	require.Len(t, idx.VectorSearch.Profiles, 1)
	profile := idx.VectorSearch.Profiles[0]
	assert.Equal(t, "tft-units-algorithm", profile.Algorithm)
	assert.Equal(t, "tft-units-vectorizer", profile.Vectorizer)
	require.Len(t, idx.VectorSearch.Vectorizers, 1)
	assert.Equal(t, "azureOpenAI", idx.VectorSearch.Vectorizers[0].Kind)
}

func TestBuildIndexEntityFields(t *testing.T) {
	cfg := testConfig()

	itemBranch, _ := cfg.BranchFor("items")
	itemNames := fieldNames(cfg.buildIndex(itemBranch).Fields)
	assert.Contains(t, itemNames, "desc")
	assert.Contains(t, itemNames, "unique")
	assert.Contains(t, itemNames, "components")
	assert.NotContains(t, itemNames, "tier")

	traitBranch, _ := cfg.BranchFor("traits")
	traitNames := fieldNames(cfg.buildIndex(traitBranch).Fields)
	assert.Contains(t, traitNames, "breakpoints_json")
	assert.Contains(t, traitNames, "min_units")
	assert.NotContains(t, traitNames, "desc")
}

func TestBuildSkillsetProjections(t *testing.T) {
	cfg := testConfig()
	branch, _ := cfg.BranchFor("items")
	ss := cfg.buildSkillset(branch)

	assert.Equal(t, "tft-items-ss", ss.Name)
	require.Len(t, ss.Skills, 2)
	assert.Equal(t, "#Microsoft.Skills.Text.SplitSkill", ss.Skills[0].ODataType)
	assert.Equal(t, 2000, ss.Skills[0].MaximumPageLength)
	assert.Equal(t, "#Microsoft.Skills.Text.AzureOpenAIEmbeddingSkill", ss.Skills[1].ODataType)
	assert.Equal(t, 1536, ss.Skills[1].Dimensions)

	require.NotNil(t, ss.IndexProjections)
	require.Len(t, ss.IndexProjections.Selectors, 1)
	sel := ss.IndexProjections.Selectors[0]
	assert.Equal(t, "tft-items", sel.TargetIndexName)
	assert.Equal(t, "parent_id", sel.ParentKeyFieldName)

	mapped := make([]string, 0, len(sel.Mappings))
	for _, m := range sel.Mappings {
		mapped = append(mapped, m.Name)
	}
	assert.Contains(t, mapped, "chunk")
	assert.Contains(t, mapped, VectorField)
	assert.Contains(t, mapped, "components")

	require.NotNil(t, ss.IndexProjections.Parameters)
	assert.Equal(t, "skipIndexingParentDocuments", ss.IndexProjections.Parameters.ProjectionMode)
}

func TestBuildIndexerWiring(t *testing.T) {
	cfg := testConfig()
	branch, _ := cfg.BranchFor("traits")
	ix := cfg.buildIndexer(branch)

	assert.Equal(t, "tft-traits-idxr", ix.Name)
	assert.Equal(t, "tft-traits-ds", ix.DataSourceName)
	assert.Equal(t, "tft-traits-ss", ix.SkillsetName)
	assert.Equal(t, "tft-traits", ix.TargetIndexName)
	require.NotNil(t, ix.Parameters)
	assert.Equal(t, "jsonLines", ix.Parameters.Configuration["parsingMode"])
}

func TestBuildDataSource(t *testing.T) {
	cfg := testConfig()
	branch, _ := cfg.BranchFor("units")
	ds := cfg.buildDataSource(branch)

	assert.Equal(t, "tft-units-ds", ds.Name)
	assert.Equal(t, "azureblob", ds.Type)
	assert.Equal(t, cfg.BlobConnection, ds.Credentials.ConnectionString)
	assert.Equal(t, "tft-units", ds.Container.Name)
}
