package commands

import (
	"fmt"

	"intelvest/internal/app"
	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var sentimentCmd = &cobra.Command{
	Use:   "sentiment [symbol]",
	Short: "Fetch news sentiment for one symbol",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSentiment,
}

func init() {
	rootCmd.AddCommand(sentimentCmd)
}

func runSentiment(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	symbol := DefaultAnalysisSymbol
	if len(args) > 0 {
		symbol = args[0]
	}

	state := viewstate.New[domain.PredictionSnapshot]()
	if err := orchestrator.FetchPrediction(cmd.Context(), state, symbol, app.DefaultHorizonDays); err != nil {
		return err
	}

	view := state.Current()
	score := view.Data.Sentiment.Score
	positive, neutral, negative := calculator.SentimentMix(score)

	fmt.Printf("%s sentiment: %.3f (%s)\n", view.Data.Symbol, score, calculator.SentimentBucketFor(score))
	fmt.Printf("  positive %.2f / neutral %.2f / negative %.2f\n", positive, neutral, negative)

	if len(view.Data.Sentiment.Posts) > 0 {
		fmt.Println("\nsources:")
		for _, post := range view.Data.Sentiment.Posts {
			fmt.Printf("  - %s\n", post)
		}
	}

	printWarnings(view.Warnings)
	return nil
}
