package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"tft-atlas/core/config"
	"tft-atlas/core/logger"
	"tft-atlas/feature/agent"
	"tft-atlas/feature/search"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a game question from the published indexes",
	Long: `Retrieves supporting documents from the unit, item, and trait indexes
and asks the configured chat model a grounded question.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAsk(cmd.Context(), strings.Join(args, " "))
	},
}

func init() {
	RootCmd.AddCommand(askCmd)
}

func runAsk(ctx context.Context, question string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logg.Sync()

	searcher := search.NewClient(cfg.Search, logg)
	indexes := []string{cfg.Search.IndexUnits, cfg.Search.IndexItems, cfg.Search.IndexTraits}
	grounder := agent.NewGrounder(searcher, indexes, cfg.Agent.TopK, logg)

	facts, err := grounder.Ground(ctx, question)
	if err != nil {
		logg.Warn("Retrieval failed, answering without grounding", zap.Error(err))
		facts = ""
	}

	client := agent.NewClient(cfg.Agent, logg)
	answer, err := client.Complete(ctx, agent.BuildMessages(question, facts))
	if err != nil {
		return err
	}

	fmt.Println(answer)
	return nil
}
