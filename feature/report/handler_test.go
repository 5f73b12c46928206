package report

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tft-atlas/feature/recipes"
	"tft-atlas/feature/search"
)

func setupTestApp(t *testing.T) (*fiber.App, *Store) {
	app := fiber.New()
	store := NewStore(t.TempDir(), zap.NewNop())
	handler := NewHandler(store, zap.NewNop())
	handler.RegisterRoutes(app)
	return app, store
}

func TestHandleLatestNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	req := httptest.NewRequest("GET", "/reports/latest", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleLatest(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.WriteSummary(&RunSummary{
		RunID: "run-1",
		Branches: []search.BranchResult{
			{Entity: "units", Documents: 60, Published: true},
		},
	}))

	req := httptest.NewRequest("GET", "/reports/latest", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body RunSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "run-1", body.RunID)
	require.Len(t, body.Branches, 1)
	assert.Equal(t, "units", body.Branches[0].Entity)
}

func TestHandleUnresolvedRecipes(t *testing.T) {
	app, store := setupTestApp(t)

	require.NoError(t, store.WriteRecipeReport(&recipes.Report{
		Entries: 5,
		UnresolvedItems: []recipes.UnresolvedName{
			{Name: "Mystery Blade", Source: "lolchess", BestScore: 0.38},
		},
	}))

	req := httptest.NewRequest("GET", "/reports/recipes/unresolved", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	var unresolved []recipes.UnresolvedName
	require.NoError(t, json.Unmarshal(body["unresolved_items"], &unresolved))
	require.Len(t, unresolved, 1)
	assert.Equal(t, "Mystery Blade", unresolved[0].Name)
}
