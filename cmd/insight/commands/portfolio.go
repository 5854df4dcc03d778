package commands

import (
	"fmt"

	"intelvest/internal/domain"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Fetch the portfolio with client-side derived metrics",
	RunE:  runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	state := viewstate.New[domain.DerivedPortfolioMetrics]()
	if err := orchestrator.FetchPortfolio(cmd.Context(), state); err != nil {
		return err
	}

	view := state.Current()
	for _, holding := range view.Data.Holdings {
		pnl := holding.PnlPercent.StringFixed(2) + "%"
		if holding.PnlUndefined {
			pnl = "n/a"
		}
		fmt.Printf(
			"%-12s value %12s  weight %6s%%  p&l %s\n",
			holding.Symbol, holding.Value.StringFixed(2), holding.Weight.StringFixed(2), pnl,
		)
	}
	fmt.Printf("\ntotal value: %s\n", view.Data.TotalValue.StringFixed(2))
	fmt.Printf("risk %.1f / diversification %.1f\n", view.Data.RiskScore, view.Data.DiversificationScore)

	printWarnings(view.Warnings)
	return nil
}
