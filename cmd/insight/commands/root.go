package commands

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insight",
	Short: "intelvest - stock insights from the terminal",
	Long: `intelvest CLI

Fetches predictions, sentiment, social trends, portfolio metrics and
market overviews from the intelvestor backend.

Examples:
  go run ./cmd/insight predict RELIANCE --horizon 30
  go run ./cmd/insight social AXISBANK
  go run ./cmd/insight dashboard --watch
  go run ./cmd/insight api`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
