package commands

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"intelvest/internal/clock"
	"intelvest/internal/domain"
	"intelvest/internal/logger"
	"intelvest/internal/viewstate"

	"github.com/spf13/cobra"
)

var (
	dashboardSymbol   string
	dashboardSymbols  string
	dashboardWatch    bool
	dashboardInterval int
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Fetch the composite dashboard view",
	RunE:  runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().StringVar(&dashboardSymbol, "symbol", "RELIANCE", "symbol to predict")
	dashboardCmd.Flags().StringVar(&dashboardSymbols, "symbols", "", "comma-separated basket to analyze (default basket if empty)")
	dashboardCmd.Flags().BoolVar(&dashboardWatch, "watch", false, "refresh on an interval until interrupted")
	dashboardCmd.Flags().IntVar(&dashboardInterval, "interval", 60, "refresh interval in seconds")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	orchestrator, err := initOrchestrator()
	if err != nil {
		return err
	}

	basket := []string{}
	if dashboardSymbols != "" {
		basket = strings.Split(dashboardSymbols, ",")
	}

	state := viewstate.New[domain.DashboardSnapshot]()
	fetchAndPrint := func(ctx context.Context) error {
		if err := orchestrator.FetchDashboard(ctx, state, dashboardSymbol, basket); err != nil {
			return err
		}
		view := state.Current()
		printDashboard(view.Data)
		printWarnings(view.Warnings)
		return nil
	}

	if err := fetchAndPrint(cmd.Context()); err != nil {
		return err
	}
	if !dashboardWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := clock.New(time.Duration(dashboardInterval)*time.Second, func(now time.Time) {
		fmt.Printf("\n=== %s ===\n", now.Format(time.TimeOnly))
		if err := fetchAndPrint(ctx); err != nil {
			logger.Error(err)
		}
	})
	ticker.Start()
	defer ticker.Stop()

	<-ctx.Done()
	return nil
}

func printDashboard(snapshot domain.DashboardSnapshot) {
	fmt.Println("market:")
	printMarket(snapshot.Market)

	fmt.Println("\nbasket analysis:")
	for _, position := range snapshot.Portfolio.Positions {
		fmt.Printf(
			"%-12s %12s  %+6.2f%%  weight %5.1f%%\n",
			position.Symbol, position.Value.StringFixed(2), position.ChangePercent, position.Weight,
		)
	}
	fmt.Printf(
		"total %s, overall change %+.2f%%, risk %.1f, diversification %.1f\n",
		snapshot.Portfolio.TotalValue.StringFixed(2),
		snapshot.Portfolio.OverallChange,
		snapshot.Portfolio.RiskScore,
		snapshot.Portfolio.DiversificationScore,
	)

	if snapshot.Prediction != nil {
		fmt.Printf("\n%s forecast (%d days):\n", snapshot.Prediction.Symbol, snapshot.Prediction.Horizon)
		for _, point := range snapshot.Prediction.Points {
			fmt.Printf("  %s  %s\n", point.Date.Format(time.DateOnly), point.Pred.StringFixed(2))
		}
	}
}
