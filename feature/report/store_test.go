package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tft-atlas/feature/recipes"
	"tft-atlas/feature/search"
)

func TestSummaryRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	summary := &RunSummary{
		RunID:      "4f2c9a10-8f6a-4a7e-9a2e-0c1d2e3f4a5b",
		SetKey:     "TFTSet15",
		StartedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 8, 30, 12, 5, 0, 0, time.UTC),
		Branches: []search.BranchResult{
			{Entity: "units", Documents: 60, Published: true, ItemsProcessed: 60},
			{Entity: "items", Documents: 40, Published: true, ItemsProcessed: 40, ItemsFailed: 1},
			{Entity: "traits", Documents: 28, Published: true, ItemsProcessed: 28},
		},
	}
	require.NoError(t, store.WriteSummary(summary))

	loaded, err := store.LatestSummary()
	require.NoError(t, err)
	assert.Equal(t, summary.RunID, loaded.RunID)
	assert.Len(t, loaded.Branches, 3)
	assert.True(t, loaded.Ok())
}

func TestLatestSummaryMissing(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	_, err := store.LatestSummary()
	assert.ErrorIs(t, err, ErrNoSummary)
}

func TestSummaryOk(t *testing.T) {
	ok := &RunSummary{Branches: []search.BranchResult{{Entity: "units", Published: true}}}
	assert.True(t, ok.Ok())

	skipped := &RunSummary{Branches: []search.BranchResult{
		{Entity: "units", Published: true},
		{Entity: "items", Published: false, Error: "upload failed"},
	}}
	assert.False(t, skipped.Ok())

	fatal := &RunSummary{Fatal: "unknown trait id", Branches: nil}
	assert.False(t, fatal.Ok())
}

func TestRecipeReportRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), zap.NewNop())

	rep := &recipes.Report{
		Entries:  10,
		Resolved: 9,
		UnresolvedItems: []recipes.UnresolvedName{
			{Name: "Mystery Blade", Source: "mobalytics", BestScore: 0.41},
		},
	}
	require.NoError(t, store.WriteRecipeReport(rep))

	loaded, err := store.LatestRecipeReport()
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.Entries)
	require.Len(t, loaded.UnresolvedItems, 1)
	assert.Equal(t, "Mystery Blade", loaded.UnresolvedItems[0].Name)
}
