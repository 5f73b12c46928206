package recipes

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverrides_MissingFile(t *testing.T) {
	o, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, o)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	content := `{"TFT_Item_InfinityEdge": {"components": ["TFT_Item_BFSword", "TFT_Item_SparringGloves"]}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	o, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"TFT_Item_BFSword", "TFT_Item_SparringGloves"}, o["TFT_Item_InfinityEdge"])
}

func TestLoadOverrides_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := LoadOverrides(path)
	assert.Error(t, err)
}

func TestWriteCandidates_ExistingEntriesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.json")

	existing := `{"TFT_Item_InfinityEdge": {"components": ["hand_checked"]}}`
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	n, err := WriteCandidates(path, map[string]ResolvedRecipe{
		"TFT_Item_InfinityEdge": {Components: []string{"freshly_scraped"}},
		"TFT_Item_GiantSlayer":  {Components: []string{"TFT_Item_BFSword", "TFT_Item_RecurveBow"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]overrideEntry
	require.NoError(t, json.Unmarshal(data, &got))

	// The hand-checked entry was not replaced; the new item was added.
	assert.Equal(t, []string{"hand_checked"}, got["TFT_Item_InfinityEdge"].Components)
	assert.Equal(t, []string{"TFT_Item_BFSword", "TFT_Item_RecurveBow"}, got["TFT_Item_GiantSlayer"].Components)
}
