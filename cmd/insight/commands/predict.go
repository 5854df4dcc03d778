package commands

import (
	"fmt"
	"os"

	"intelvest/internal/app"
	"intelvest/internal/domain"
	"intelvest/internal/render"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var predictHorizon int

// DefaultAnalysisSymbol is used by the prediction and sentiment commands
// when no symbol is given.
const DefaultAnalysisSymbol = "AXISBANK"

var predictCmd = &cobra.Command{
	Use:   "predict [symbol]",
	Short: "Fetch a price forecast for one symbol",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPredict,
}

func init() {
	rootCmd.AddCommand(predictCmd)
	predictCmd.Flags().IntVar(&predictHorizon, "horizon", app.DefaultHorizonDays, "forecast horizon in days")
}

func runPredict(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	symbol := DefaultAnalysisSymbol
	if len(args) > 0 {
		symbol = args[0]
	}

	state := viewstate.New[domain.PredictionSnapshot]()
	if err := orchestrator.FetchPrediction(cmd.Context(), state, symbol, predictHorizon); err != nil {
		return err
	}

	view := state.Current()
	renderer := render.TextRenderer{Out: os.Stdout}
	if err := renderer.Render("forecast", view.Data.Points); err != nil {
		return err
	}

	if len(view.Data.Shap) > 0 {
		fmt.Println("\ndrivers:")
		for _, feature := range view.Data.Shap {
			fmt.Printf("  %s: %+.4f\n", feature.Feature, feature.Value)
		}
	}
	fmt.Printf("\nsentiment score: %.3f\n", view.Data.Sentiment.Score)
	fmt.Printf("%s\n", view.Data.Explanation)

	printWarnings(view.Warnings)
	return nil
}

func printWarnings(warnings []string) {
	for _, warning := range warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}
