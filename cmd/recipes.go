package cmd

import (
	"context"
	"log"

	"tft-atlas/core/cache"
	"tft-atlas/core/config"
	"tft-atlas/core/logger"
	"tft-atlas/core/match"
	"tft-atlas/feature/cdragon"
	"tft-atlas/feature/recipes"
	"tft-atlas/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// recipesCmd represents the recipes command
var recipesCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Scrape and resolve item recipes",
	Long: `Scrapes the recipe sites, resolves the scraped names against the
current item list, and writes the candidate file and resolution report
into the work directory. Review the report, extend the override file,
and rerun until the unresolved list is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRecipes(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(recipesCmd)
}

func runRecipes(ctx context.Context) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	source := cdragon.NewClient(cfg.Source, logg)
	items, err := source.FetchItems(ctx)
	if err != nil {
		return err
	}

	pageCache := cache.New(cfg.Cache, logg)
	scraper := recipes.NewScraper(cfg.Recipes, pageCache, logg)
	entries, err := scraper.ScrapeAll(ctx)
	if err != nil {
		return err
	}

	overrides, err := recipes.LoadOverrides(cfg.Recipes.OverridePath)
	if err != nil {
		return err
	}

	canonical := make(map[string]string, len(items))
	for _, item := range items {
		canonical[item.NameID] = item.Name
	}
	resolver := match.NewResolver(canonical, match.LevenshteinScorer{}, cfg.Recipes.Threshold)
	merger := recipes.NewMerger(resolver, cfg.Recipes.Precedence, logg)

	resolved, rep := merger.Merge(entries, overrides)

	store := report.NewStore(cfg.Work.Dir, logg)
	if err := store.WriteRecipeReport(rep); err != nil {
		return err
	}
	added, err := recipes.WriteCandidates(cfg.Recipes.CandidatePath, resolved)
	if err != nil {
		return err
	}

	logg.Info("Recipe run finished",
		zap.Int("entries", rep.Entries),
		zap.Int("resolved", rep.Resolved),
		zap.Int("unresolved_items", len(rep.UnresolvedItems)),
		zap.Int("unresolved_components", len(rep.UnresolvedComponents)),
		zap.Int("conflicts", len(rep.Conflicts)),
		zap.Int("candidates_added", added),
		zap.String("candidate_file", cfg.Recipes.CandidatePath))
	return nil
}
