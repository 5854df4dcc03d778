package commands

import (
	"fmt"

	"intelvest/internal/calculator"
	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Fetch the market overview",
	RunE:  runMarket,
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	state := viewstate.New[domain.MarketSnapshot]()
	if err := orchestrator.FetchMarket(cmd.Context(), state); err != nil {
		return err
	}

	view := state.Current()
	printMarket(view.Data)
	printWarnings(view.Warnings)
	return nil
}

func printMarket(snapshot domain.MarketSnapshot) {
	for _, tick := range snapshot.Ticks {
		fmt.Printf(
			"%-12s %12s  %+6.2f%%  vol %d\n",
			tick.Symbol, tick.CurrentPrice.StringFixed(2), tick.ChangePercent, tick.Volume,
		)
	}

	summary := calculator.SummarizeMarket(snapshot)
	fmt.Printf(
		"\n%d advancing / %d declining, mean change %+.2f%% (stdev %.2f)\n",
		summary.Advancers, summary.Decliners, summary.MeanChangePercent, summary.ChangeVolatility,
	)
}
