package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"tft-atlas/core/cache"
	"tft-atlas/core/config"
	"tft-atlas/core/logger"
	"tft-atlas/core/match"
	"tft-atlas/core/storage"
	"tft-atlas/feature/cdragon"
	"tft-atlas/feature/docs"
	"tft-atlas/feature/recipes"
	"tft-atlas/feature/report"
	"tft-atlas/feature/search"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestSkipPublish   bool
	ingestFromArtifacts bool
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch, normalize, and publish the game data",
	Long: `Fetches units, traits, and items from the data mirror, merges scraped
crafting recipes into the items, writes JSONL artifacts into the work
directory, and publishes each entity type to the search service.`,
	Run: func(cmd *cobra.Command, args []string) {
		runIngest(cmd.Context())
	},
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestSkipPublish, "skip-publish", false,
		"write JSONL artifacts but do not touch the search service")
	ingestCmd.Flags().BoolVar(&ingestFromArtifacts, "from-artifacts", false,
		"publish existing JSONL artifacts without fetching anything")
	RootCmd.AddCommand(ingestCmd)
}

func runIngest(ctx context.Context) {
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

	store := report.NewStore(cfg.Work.Dir, logg)
	summary := &report.RunSummary{
		RunID:     uuid.NewString(),
		SetKey:    cfg.Source.SetKey,
		StartedAt: time.Now().UTC(),
	}
	logg = logg.With(zap.String("run_id", summary.RunID))
	logg.Info("Ingest run started",
		zap.Bool("skip_publish", ingestSkipPublish),
		zap.Bool("from_artifacts", ingestFromArtifacts))

	fatal := func(msg string, err error) {
		summary.Fatal = err.Error()
		summary.FinishedAt = time.Now().UTC()
		if werr := store.WriteSummary(summary); werr != nil {
			logg.Error("Failed to write run summary", zap.Error(werr))
		}
		logg.Error(msg, zap.Error(err))
		_ = logg.Sync()
		os.Exit(1)
	}

	var built *builtDocs
	if ingestFromArtifacts {
		built, err = loadArtifacts(cfg.Work.Dir)
		if err != nil {
			fatal("Failed to load artifacts", err)
		}
	} else {
		built, err = buildDocuments(ctx, cfg, store, logg, summary)
		if err != nil {
			fatal("Failed to build documents", err)
		}
		if err := writeArtifacts(cfg.Work.Dir, built); err != nil {
			fatal("Failed to write artifacts", err)
		}
	}

	logg.Info("Documents ready",
		zap.Int("units", len(built.units)),
		zap.Int("traits", len(built.traits)),
		zap.Int("items", len(built.items)),
		zap.Int("failed_branches", len(built.failed)))

	var pub *search.Publisher
	if ingestSkipPublish {
		logg.Info("Publishing skipped")
	} else {
		blob, err := storage.NewClient(cfg.Storage)
		if err != nil {
			fatal("Failed to create storage client", err)
		}
		pub = search.NewPublisher(cfg.Search, blob, search.NewClient(cfg.Search, logg), logg)
	}

	// Each entity type publishes independently; one failed branch never
	// blocks the others.
	for _, branch := range cfg.Search.Branches() {
		if ferr := built.failed[branch.Entity]; ferr != nil {
			summary.Branches = append(summary.Branches, search.BranchResult{
				Entity: branch.Entity,
				Error:  ferr.Error(),
			})
			continue
		}
		if pub == nil {
			continue
		}
		var payload []byte
		var count int
		var merr error
		switch branch.Entity {
		case "units":
			payload, merr = docs.MarshalJSONL(built.units)
			count = len(built.units)
		case "items":
			payload, merr = docs.MarshalJSONL(built.items)
			count = len(built.items)
		case "traits":
			payload, merr = docs.MarshalJSONL(built.traits)
			count = len(built.traits)
		}
		if merr != nil {
			fatal("Failed to encode documents", merr)
		}
		summary.Branches = append(summary.Branches, pub.PublishBranch(ctx, branch, payload, count))
	}

	summary.FinishedAt = time.Now().UTC()
	if err := store.WriteSummary(summary); err != nil {
		fatal("Failed to write run summary", err)
	}
	logg.Info("Ingest run finished", zap.Bool("ok", summary.Ok()))
	if !summary.Ok() {
		os.Exit(1)
	}
}

// builtDocs carries the per-entity documents plus the fetch errors that
// took individual branches out of the run.
type builtDocs struct {
	units  []docs.UnitDoc
	traits []docs.TraitDoc
	items  []docs.ItemDoc
	failed map[string]error
}

// buildDocuments runs the fetch and enrich stages. A failed fetch takes
// out only the entity types that depend on it: an items failure leaves
// units and traits publishable, and vice versa. Unit validation needs
// the trait set, so a traits failure takes the units branch with it.
// Schema invariant violations are returned as errors and abort the run.
func buildDocuments(ctx context.Context, cfg *config.Config, store *report.Store, logg *zap.Logger, summary *report.RunSummary) (*builtDocs, error) {
	source := cdragon.NewClient(cfg.Source, logg)
	built := &builtDocs{failed: make(map[string]error)}

	skip := func(entity string, err error) {
		logg.Error("Branch fetch failed, skipping",
			zap.String("entity", entity),
			zap.Error(err))
		built.failed[entity] = err
	}

	traits, traitsErr := source.FetchTraits(ctx)
	if traitsErr != nil {
		skip("traits", traitsErr)
	}
	units, unitsErr := source.FetchUnits(ctx)
	if unitsErr != nil {
		skip("units", unitsErr)
	} else if traitsErr != nil {
		skip("units", fmt.Errorf("trait set unavailable for unit validation: %w", traitsErr))
	}
	items, itemsErr := source.FetchItems(ctx)
	if itemsErr != nil {
		skip("items", itemsErr)
	}

	builder := docs.NewBuilder(logg)
	if built.failed["units"] == nil {
		unitDocs, err := builder.BuildUnits(units, traits)
		if err != nil {
			return nil, err
		}
		built.units = unitDocs
	}
	if built.failed["traits"] == nil {
		traitDocs, err := builder.BuildTraits(traits)
		if err != nil {
			return nil, err
		}
		built.traits = traitDocs
	}
	if built.failed["items"] == nil {
		resolved := mergeRecipes(ctx, cfg, store, logg, items, summary)
		built.items = builder.BuildItems(items, resolved)
	}
	return built, nil
}

// mergeRecipes scrapes the recipe sites and resolves the scraped names
// against the fetched items. Scraping trouble never aborts the run;
// overrides still apply when every site is down.
func mergeRecipes(ctx context.Context, cfg *config.Config, store *report.Store, logg *zap.Logger, items []cdragon.Item, summary *report.RunSummary) map[string]recipes.ResolvedRecipe {
	pageCache := cache.New(cfg.Cache, logg)
	scraper := recipes.NewScraper(cfg.Recipes, pageCache, logg)

	entries, err := scraper.ScrapeAll(ctx)
	if err != nil {
		logg.Error("All recipe sources failed, applying overrides only", zap.Error(err))
	}

	overrides, err := recipes.LoadOverrides(cfg.Recipes.OverridePath)
	if err != nil {
		logg.Error("Failed to load overrides", zap.Error(err))
		overrides = recipes.Overrides{}
	}

	canonical := make(map[string]string, len(items))
	for _, item := range items {
		canonical[item.NameID] = item.Name
	}
	resolver := match.NewResolver(canonical, match.LevenshteinScorer{}, cfg.Recipes.Threshold)
	merger := recipes.NewMerger(resolver, cfg.Recipes.Precedence, logg)

	resolved, rep := merger.Merge(entries, overrides)
	summary.Recipes = rep
	if err := store.WriteRecipeReport(rep); err != nil {
		logg.Error("Failed to write recipe report", zap.Error(err))
	}
	if _, err := recipes.WriteCandidates(cfg.Recipes.CandidatePath, resolved); err != nil {
		logg.Error("Failed to write candidate file", zap.Error(err))
	}
	return resolved
}

// writeArtifacts persists the documents of the branches that built;
// skipped branches keep whatever artifact a previous run left behind.
func writeArtifacts(dir string, built *builtDocs) error {
	if built.failed["units"] == nil {
		if err := docs.WriteJSONL(filepath.Join(dir, "units.jsonl"), built.units); err != nil {
			return err
		}
	}
	if built.failed["traits"] == nil {
		if err := docs.WriteJSONL(filepath.Join(dir, "traits.jsonl"), built.traits); err != nil {
			return err
		}
	}
	if built.failed["items"] == nil {
		return docs.WriteJSONL(filepath.Join(dir, "items.jsonl"), built.items)
	}
	return nil
}

func loadArtifacts(dir string) (*builtDocs, error) {
	units, err := docs.ReadJSONL[docs.UnitDoc](filepath.Join(dir, "units.jsonl"))
	if err != nil {
		return nil, err
	}
	traits, err := docs.ReadJSONL[docs.TraitDoc](filepath.Join(dir, "traits.jsonl"))
	if err != nil {
		return nil, err
	}
	items, err := docs.ReadJSONL[docs.ItemDoc](filepath.Join(dir, "items.jsonl"))
	if err != nil {
		return nil, err
	}
	return &builtDocs{units: units, traits: traits, items: items, failed: map[string]error{}}, nil
}
