package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tft-atlas/core/config"
	"tft-atlas/feature/report"
)

const (
	testUnitsPayload = `{
		"TFTSet15": [
			{
				"character_id": "TFT15_Ahri",
				"display_name": "Ahri",
				"tier": 4,
				"traits": [{"id": "TFT15_StarGuardian", "name": "Star Guardian", "amount": 1}]
			}
		]
	}`
	testTraitsPayload = `[
		{
			"apiName": "TFT15_StarGuardian",
			"name": "Star Guardian",
			"desc": "Guardians gain power.",
			"conditional_trait_sets": [
				{"min_units": 2, "max_units": 3, "style_name": "bronze"},
				{"min_units": 4, "style_name": "gold"}
			]
		}
	]`
	testItemsPayload = `[
		{"apiName": "TFT_Item_BFSword", "name": "B.F. Sword", "desc": "Attack Damage."}
	]`
)

// newIngestConfig wires the source endpoints at a test server whose
// handler decides per path which entity types are healthy. The recipe
// sites point at a dead path so scraping degrades to overrides only.
func newIngestConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	work := t.TempDir()

	cfg, err := config.LoadConfig(work)
	require.NoError(t, err)
	cfg.Source.UnitsURL = srv.URL + "/units"
	cfg.Source.TraitsURL = srv.URL + "/traits"
	cfg.Source.ItemsURL = srv.URL + "/items"
	cfg.Recipes.MobalyticsURL = srv.URL + "/gone"
	cfg.Recipes.LolchessURL = srv.URL + "/gone"
	cfg.Recipes.OverridePath = filepath.Join(work, "overrides.json")
	cfg.Recipes.CandidatePath = filepath.Join(work, "candidates.json")
	cfg.Work.Dir = work
	return cfg
}

func entityServer(t *testing.T, down map[string]bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/units":
			if down["units"] {
				http.Error(w, "export unavailable", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(testUnitsPayload))
		case "/traits":
			if down["traits"] {
				http.Error(w, "export unavailable", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(testTraitsPayload))
		case "/items":
			if down["items"] {
				http.Error(w, "export unavailable", http.StatusInternalServerError)
				return
			}
			w.Write([]byte(testItemsPayload))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBuildDocumentsItemsFailureLeavesOtherBranches(t *testing.T) {
	srv := entityServer(t, map[string]bool{"items": true})
	cfg := newIngestConfig(t, srv)
	store := report.NewStore(cfg.Work.Dir, zap.NewNop())
	summary := &report.RunSummary{}

	built, err := buildDocuments(context.Background(), cfg, store, zap.NewNop(), summary)
	require.NoError(t, err)

	require.Len(t, built.units, 1)
	assert.Equal(t, "TFT15_Ahri", built.units[0].ID)
	require.Len(t, built.traits, 1)
	assert.Empty(t, built.items)

	require.Contains(t, built.failed, "items")
	assert.NotContains(t, built.failed, "units")
	assert.NotContains(t, built.failed, "traits")
}

func TestBuildDocumentsTraitsFailureTakesUnitsToo(t *testing.T) {
	srv := entityServer(t, map[string]bool{"traits": true})
	cfg := newIngestConfig(t, srv)
	store := report.NewStore(cfg.Work.Dir, zap.NewNop())
	summary := &report.RunSummary{}

	built, err := buildDocuments(context.Background(), cfg, store, zap.NewNop(), summary)
	require.NoError(t, err)

	// Unit validation needs the trait set, so both branches are out.
	require.Contains(t, built.failed, "traits")
	require.Contains(t, built.failed, "units")
	assert.ErrorContains(t, built.failed["units"], "trait set unavailable")
	assert.Empty(t, built.units)
	assert.Empty(t, built.traits)

	// The items branch still builds, with recipes degraded to overrides.
	require.Len(t, built.items, 1)
	assert.Equal(t, "TFT_Item_BFSword", built.items[0].ID)
}

func TestWriteArtifactsSkipsFailedBranches(t *testing.T) {
	srv := entityServer(t, map[string]bool{"items": true})
	cfg := newIngestConfig(t, srv)
	store := report.NewStore(cfg.Work.Dir, zap.NewNop())

	built, err := buildDocuments(context.Background(), cfg, store, zap.NewNop(), &report.RunSummary{})
	require.NoError(t, err)
	require.NoError(t, writeArtifacts(cfg.Work.Dir, built))

	_, err = os.Stat(filepath.Join(cfg.Work.Dir, "units.jsonl"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Work.Dir, "traits.jsonl"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.Work.Dir, "items.jsonl"))
	assert.True(t, os.IsNotExist(err))
}
